package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"sitecheck/internal/check"
)

// WaitUntil is the readiness condition a navigation blocks on.
type WaitUntil string

const (
	DOMContentLoaded WaitUntil = "domcontentloaded"
	Load             WaitUntil = "load"
	// NetworkIdle waits for a quiet window with no in-flight requests.
	NetworkIdle WaitUntil = "networkidle"
)

func (w WaitUntil) state() *playwright.WaitUntilState {
	switch w {
	case DOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	case NetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	default:
		return playwright.WaitUntilStateLoad
	}
}

const classStateJS = `([sel, cls, want]) => {
	const el = document.querySelector(sel);
	return !!el && el.classList.contains(cls) === want;
}`

// Session is one isolated browser context with a single page.
type Session struct {
	ctx     playwright.BrowserContext
	page    playwright.Page
	opts    LaunchOptions
	log     *slog.Logger
	console ConsoleCollector
	closed  bool
}

var _ check.Surface = (*Session)(nil)

// Navigate loads url and blocks until cond is reached.
func (s *Session) Navigate(ctx context.Context, url string, cond WaitUntil) error {
	if err := ctx.Err(); err != nil {
		return &check.NavigationError{URL: url, WaitUntil: string(cond), Err: err}
	}
	start := time.Now()
	s.log.Info("navigating", "url", url, "wait_until", string(cond))
	resp, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: cond.state(),
		Timeout:   playwright.Float(ms(s.opts.NavTimeout)),
	})
	if err != nil {
		return &check.NavigationError{URL: url, WaitUntil: string(cond), Err: err}
	}
	if resp != nil && resp.Status() >= 400 {
		return &check.NavigationError{URL: url, WaitUntil: string(cond),
			Err: fmt.Errorf("status %d %s", resp.Status(), resp.StatusText())}
	}
	s.log.Info("navigated", "url", s.page.URL(), "elapsed", time.Since(start).String())
	return nil
}

// Screenshot writes the current render to path.
func (s *Session) Screenshot(path string, fullPage bool) error {
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	}); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	s.log.Info("screenshot", "path", path, "full_page", fullPage)
	return nil
}

// ConsoleErrors returns console errors seen since the session opened.
func (s *Session) ConsoleErrors() []string { return s.console.Errors() }

func (s *Session) Visible(selector string) bool {
	ok, err := s.page.Locator(selector).First().IsVisible()
	if err != nil {
		s.log.Debug("visibility check failed", "selector", selector, "error", err.Error())
		return false
	}
	return ok
}

func (s *Session) VisibleNth(selector string, i int) bool {
	ok, err := s.page.Locator(selector).Nth(i).IsVisible()
	if err != nil {
		s.log.Debug("visibility check failed", "selector", selector, "index", i, "error", err.Error())
		return false
	}
	return ok
}

func (s *Session) Count(selector string) (int, error) {
	return s.page.Locator(selector).Count()
}

func (s *Session) ScrollIntoView(selector string) error {
	return s.page.Locator(selector).First().ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(ms(s.opts.NavTimeout)),
	})
}

func (s *Session) WaitVisible(selector string, timeout time.Duration) (bool, error) {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return false, nil
	}
	return err == nil, err
}

func (s *Session) HasClass(selector, class string) (bool, error) {
	v, err := s.page.Locator(selector).First().Evaluate("(el, cls) => el.classList.contains(cls)", class)
	if err != nil {
		return false, err
	}
	ok, _ := v.(bool)
	return ok, nil
}

func (s *Session) Tap(selector string) error {
	return s.page.Locator(selector).First().Tap()
}

func (s *Session) WaitClass(selector, class string, want bool, timeout time.Duration) (bool, error) {
	_, err := s.page.WaitForFunction(classStateJS, []any{selector, class, want}, playwright.PageWaitForFunctionOptions{
		Polling: playwright.Float(ms(s.opts.PollInterval)),
		Timeout: playwright.Float(ms(timeout)),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return false, nil
	}
	return err == nil, err
}

// Close tears down the page and its context. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	video := s.page.Video()
	var errs []error
	if err := s.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close page: %w", err))
	}
	if err := s.ctx.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close context: %w", err))
	}
	if video != nil {
		if p, err := video.Path(); err == nil {
			s.log.Info("video saved", "path", p)
		}
	}
	s.log.Info("session closed", "console_errors", len(s.console.Errors()))
	return errors.Join(errs...)
}
