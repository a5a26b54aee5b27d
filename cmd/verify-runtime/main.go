package main

import (
	"sitecheck/internal/artifact"
	"sitecheck/internal/cli"
	"sitecheck/internal/config"
	"sitecheck/internal/report"
	"sitecheck/internal/runner"
)

func main() {
	cli.Main(cli.Command{
		Use:   "verify-runtime",
		Short: "Verify the site renders with JavaScript disabled, reduced motion and touch input",
		Long: `verify-runtime runs three isolated browser scenarios against BASE_URL
(default http://localhost:8080): JavaScript disabled, reduced motion and mobile
touch. Screenshots go to qa-artifacts/ unless --out is given.`,
		Defaults: config.Defaults{
			BaseURL:    "http://localhost:8080",
			OutDir:     "qa-artifacts",
			BaseURLEnv: "BASE_URL",
		},
		Style:     report.Plain,
		Numbered:  true,
		Scenarios: runner.RuntimeScenarios,
		Header: func(p *report.Printer, cfg *config.Config) {
			p.Blank()
			p.Banner("RUNTIME VERIFICATION - " + cfg.BaseURL)
			p.Blank()
		},
		Footer: func(p *report.Printer, dir *artifact.Dir) {
			p.Banner("ALL RUNTIME CHECKS COMPLETED SUCCESSFULLY")
			p.Blank()
			p.Linef("Screenshots saved to %s/", artifact.Rel(dir.Root()))
		},
		FailureTitle: "RUNTIME CHECK FAILED:",
	})
}
