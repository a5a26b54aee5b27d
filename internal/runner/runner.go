// Package runner sequences scenarios: one isolated browser session each,
// strictly one after another.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sitecheck/internal/artifact"
	"sitecheck/internal/browser"
	"sitecheck/internal/check"
	"sitecheck/internal/report"
)

// ErrConsoleErrors is returned in strict mode when a page logged errors.
var ErrConsoleErrors = errors.New("console errors found")

// Page is a live session as scenarios see it.
type Page interface {
	check.Surface
	Navigate(ctx context.Context, url string, cond browser.WaitUntil) error
	Screenshot(path string, fullPage bool) error
	ConsoleErrors() []string
	Close() error
}

// Opener creates a session for a profile.
type Opener interface {
	Open(ctx context.Context, p browser.Profile) (Page, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, p browser.Profile) (Page, error)

func (f OpenerFunc) Open(ctx context.Context, p browser.Profile) (Page, error) { return f(ctx, p) }

// Sessions opens sessions from a running browser.
func Sessions(l *browser.Launcher) Opener {
	return OpenerFunc(func(ctx context.Context, p browser.Profile) (Page, error) {
		s, err := l.Open(ctx, p)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Scenario is one self-contained check sequence.
type Scenario struct {
	// Name prefixes the scenario's artifact files.
	Name    string
	Title   string
	Profile browser.Profile
	Run     func(ctx context.Context, env *Env) error
}

// Env is what a running scenario may touch.
type Env struct {
	Page      Page
	Out       *report.Printer
	Artifacts *artifact.Dir
	URL       string
	// Settle bounds waits for scroll-triggered renders and transitions.
	Settle time.Duration
	Log    *slog.Logger

	scenario string
}

// Checkpoint captures a screenshot named after the scenario and checkpoint
// and prints its path.
func (e *Env) Checkpoint(name string, fullPage bool) error {
	path := e.Artifacts.Path(e.scenario, name)
	if err := e.Page.Screenshot(path, fullPage); err != nil {
		return err
	}
	e.Out.Linef("Screenshot: %s", artifact.Rel(path))
	return nil
}

// Result is the transient outcome of one scenario.
type Result struct {
	Name          string
	Passed        bool
	ConsoleErrors []string
}

// Runner executes scenarios sequentially against one target URL.
type Runner struct {
	Open      Opener
	Out       *report.Printer
	Artifacts *artifact.Dir
	URL       string
	Settle    time.Duration
	Log       *slog.Logger
	// Numbered prints SCENARIO N headings and pass lines.
	Numbered bool
	// StrictConsole fails a scenario whose page logged console errors.
	StrictConsole bool
}

// Run executes scenarios in order and stops at the first failure. Every
// session is closed before the next one opens.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	if r.Log == nil {
		r.Log = slog.Default()
	}
	results := make([]Result, 0, len(scenarios))
	for i, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if r.Numbered {
			r.Out.Section(fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Title))
		}
		res, err := r.runOne(ctx, sc)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("%s: %w", sc.Title, err)
		}
		if r.Numbered {
			r.Out.Linef("SCENARIO %d: PASSED", i+1)
			r.Out.Blank()
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) (res Result, err error) {
	res.Name = sc.Name
	log := r.Log.With("scope", "scenario", "scenario", sc.Name)
	log.Info("scenario started")

	page, err := r.Open.Open(ctx, sc.Profile)
	if err != nil {
		return res, fmt.Errorf("open session: %w", err)
	}
	defer func() {
		res.ConsoleErrors = page.ConsoleErrors()
		if cerr := page.Close(); cerr != nil {
			log.Warn("session close failed", "error", cerr.Error())
		}
	}()

	env := &Env{
		Page:      page,
		Out:       r.Out,
		Artifacts: r.Artifacts,
		URL:       r.URL,
		Settle:    r.Settle,
		Log:       log,
		scenario:  sc.Name,
	}
	if err := sc.Run(ctx, env); err != nil {
		log.Error("scenario failed", "error", err.Error())
		return res, err
	}
	if r.StrictConsole {
		if errs := page.ConsoleErrors(); len(errs) > 0 {
			log.Error("scenario failed", "console_errors", len(errs))
			return res, fmt.Errorf("%w: %d", ErrConsoleErrors, len(errs))
		}
	}
	res.Passed = true
	log.Info("scenario passed")
	return res, nil
}
