// Package browser manages the Playwright driver, the Chromium process and
// the isolated sessions checks run in.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configure the browser process.
type LaunchOptions struct {
	Headless bool
	// Preinstalled skips the driver and browser download.
	Preinstalled bool
	// VideoDir records one video per session into it when non-empty.
	VideoDir   string
	NavTimeout time.Duration
	// PollInterval is the sampling interval of in-page waits.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Launcher owns the Playwright driver and one Chromium process. Sessions
// opened from it are isolated browser contexts.
type Launcher struct {
	opts    LaunchOptions
	log     *slog.Logger
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts Playwright and Chromium.
func Launch(ctx context.Context, opts LaunchOptions) (*Launcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 40 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("scope", "browser")

	if !opts.Preinstalled {
		logger.Info("installing playwright browsers")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--disable-dev-shm-usage"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	logger.Info("browser launched", "headless", opts.Headless, "version", b.Version())

	return &Launcher{opts: opts, log: logger, pw: pw, browser: b}, nil
}

// Open creates a fresh context and page emulating p. The caller must Close
// the session.
func (l *Launcher) Open(ctx context.Context, p Profile) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var videoDir string
	if l.opts.VideoDir != "" {
		videoDir = filepath.Join(l.opts.VideoDir, p.Name)
	}

	bctx, err := l.browser.NewContext(contextOptions(p, videoDir))
	if err != nil {
		return nil, fmt.Errorf("new context %s: %w", p.Name, err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page %s: %w", p.Name, err)
	}
	page.SetDefaultTimeout(ms(l.opts.NavTimeout))

	s := &Session{
		ctx:  bctx,
		page: page,
		opts: l.opts,
		log:  l.log.With("profile", p.Name),
	}
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		s.console.Record(msg.Type(), msg.Text())
		if msg.Type() == "error" {
			s.log.Warn("console error", "text", msg.Text())
		}
	})
	s.log.Info("session opened",
		"mobile", p.IsMobile, "touch", p.HasTouch,
		"javascript", !p.JavaScriptDisabled, "reduced_motion", p.ReducedMotion)
	return s, nil
}

// Close shuts down Chromium and the driver.
func (l *Launcher) Close() error {
	var errs []error
	if l.browser != nil {
		if err := l.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if l.pw != nil {
		if err := l.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	l.log.Info("browser closed")
	return errors.Join(errs...)
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
