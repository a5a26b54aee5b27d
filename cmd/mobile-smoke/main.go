package main

import (
	"path/filepath"

	"sitecheck/internal/artifact"
	"sitecheck/internal/cli"
	"sitecheck/internal/config"
	"sitecheck/internal/report"
	"sitecheck/internal/runner"
)

const prodURL = "https://www.mystoragevalet.com"

func main() {
	cli.Main(cli.Command{
		Use:   "mobile-smoke",
		Short: "Smoke test the production site on an emulated phone",
		Long: `mobile-smoke opens the production site in a 390x844 touch viewport, checks
the hero, navigation, How It Works, flip cards and signup form, and reports
console errors. Screenshots are written as prod-mobile-*.png under /tmp.`,
		Defaults: config.Defaults{
			BaseURL: prodURL,
			OutDir:  "/tmp",
		},
		Style:     report.Emoji,
		Scenarios: runner.MobileSmoke,
		Header: func(p *report.Printer, _ *config.Config) {
			p.Linef("Testing production mobile view...")
			p.Blank()
		},
		Footer: func(p *report.Printer, dir *artifact.Dir) {
			p.Blank()
			p.Banner(
				"PRODUCTION MOBILE TEST COMPLETE",
				"Screenshots: "+filepath.Join(artifact.Rel(dir.Root()), "prod-mobile-*.png"),
			)
		},
		FailureTitle: "Test failed:",
		RunLog:       "prod-mobile-runner.ndjson",
	})
}
