// Package cli builds the cobra commands the smoke runners share.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sitecheck/internal/artifact"
	"sitecheck/internal/browser"
	"sitecheck/internal/config"
	"sitecheck/internal/report"
	"sitecheck/internal/runner"
)

// Command describes one runner executable.
type Command struct {
	Use   string
	Short string
	Long  string

	Defaults  config.Defaults
	Style     report.Style
	Numbered  bool
	Scenarios func() []runner.Scenario

	// Header and Footer print around a run; Footer only after success.
	Header func(p *report.Printer, cfg *config.Config)
	Footer func(p *report.Printer, dir *artifact.Dir)
	// FailureTitle leads the error banner.
	FailureTitle string
	// RunLog names the NDJSON log inside the output dir. Empty means
	// runner.RunLogName.
	RunLog string
}

func (c Command) runLogName() string {
	if c.RunLog != "" {
		return c.RunLog
	}
	return runner.RunLogName
}

// New returns the cobra command for c, writing to stdout and stderr.
func New(c Command, stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           c.Use,
		Short:         c.Short,
		Long:          c.Long,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := report.New(stdout, stderr, c.Style)
			err := run(cmd.Context(), c, configPath, cmd, p)
			if err != nil {
				p.Failure(c.FailureTitle, err)
				return reported{err}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", os.Getenv("QA_CONFIG"), "YAML config file")
	f.String("url", c.Defaults.BaseURL, "Target URL")
	f.String("out", c.Defaults.OutDir, "Screenshot output directory")
	f.Bool("headless", true, "Run the browser headless")
	f.Bool("video", false, "Record one video per scenario")
	f.Bool("strict-console", false, "Fail when the page logs console errors")
	return cmd
}

func run(ctx context.Context, c Command, configPath string, cmd *cobra.Command, p *report.Printer) error {
	cfg, err := config.Load(configPath, c.Defaults, cmd.Flags())
	if err != nil {
		return err
	}
	dir, err := artifact.New(cfg.OutDir)
	if err != nil {
		return err
	}
	logger, closer, err := runner.OpenRunLog(dir.File(c.runLogName()))
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer closer.Close()
	logger.Info("run started", "scope", "runner", "url", cfg.BaseURL, "out_dir", dir.Root())

	if c.Header != nil {
		c.Header(p, cfg)
	}

	opts := browser.LaunchOptions{
		Headless:     cfg.Headless,
		Preinstalled: cfg.Preinstalled,
		NavTimeout:   cfg.NavTimeout,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	}
	if cfg.Video {
		opts.VideoDir = dir.File("video")
	}
	l, err := browser.Launch(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Close(); err != nil {
			logger.Warn("browser shutdown", "scope", "runner", "error", err.Error())
		}
	}()

	r := &runner.Runner{
		Open:          runner.Sessions(l),
		Out:           p,
		Artifacts:     dir,
		URL:           cfg.BaseURL,
		Settle:        cfg.SettleTimeout,
		Log:           logger,
		Numbered:      c.Numbered,
		StrictConsole: cfg.StrictConsole,
	}
	if _, err := r.Run(ctx, c.Scenarios()); err != nil {
		return err
	}
	logger.Info("run finished", "scope", "runner")

	if c.Footer != nil {
		c.Footer(p, dir)
	}
	return nil
}

// reported marks an error whose banner was already printed.
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

// Execute runs c with args. Errors not already reported by the run, such as
// bad flags, are printed to stderr.
func Execute(ctx context.Context, c Command, args []string, stdout, stderr io.Writer) error {
	cmd := New(c, stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	var rep reported
	if err != nil && !errors.As(err, &rep) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

// Main runs c as the process entry point and exits non-zero on failure.
func Main(c Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Execute(ctx, c, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
