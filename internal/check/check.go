// Package check holds the visibility and interaction checks the runners
// perform against a rendered page.
package check

import (
	"fmt"
	"time"

	"sitecheck/internal/report"
)

// Surface is the part of a rendered page the checks drive.
// Selectors passed to WaitClass must be plain CSS.
type Surface interface {
	// Visible reports whether the first match is visible. No match is false.
	Visible(selector string) bool
	// VisibleNth reports whether the i-th match is visible.
	VisibleNth(selector string, i int) bool
	Count(selector string) (int, error)
	ScrollIntoView(selector string) error
	// WaitVisible polls until the first match is visible or timeout elapses.
	WaitVisible(selector string, timeout time.Duration) (bool, error)
	HasClass(selector, class string) (bool, error)
	Tap(selector string) error
	// WaitClass polls until class presence on the first match equals want or
	// timeout elapses.
	WaitClass(selector, class string, want bool, timeout time.Duration) (bool, error)
}

// Severity decides whether a failed check aborts the run.
type Severity int

const (
	Fatal Severity = iota
	Advisory
)

// Check is a single visibility expectation.
type Check struct {
	Label    string
	Selector string
	Severity Severity
	// Warning replaces the default advisory message.
	Warning string
}

// outcome prints the result of c. A failed fatal check yields an
// *AssertionError; a failed advisory check only prints a warning.
func (c Check) outcome(p *report.Printer, ok bool) error {
	if ok {
		p.Pass(c.Label)
		return nil
	}
	if c.Severity == Advisory {
		if c.Warning != "" {
			p.Warn(c.Warning)
		} else {
			p.Warn(c.Label + " not visible (" + c.Selector + ")")
		}
		return nil
	}
	p.Fail(c.Label)
	return &AssertionError{Label: c.Label, Selector: c.Selector}
}

// Assert checks that the first element matching c.Selector is visible.
func Assert(s Surface, p *report.Printer, c Check) error {
	return c.outcome(p, s.Visible(c.Selector))
}

// AssertEventually is Assert with a bounded wait for the element to appear.
func AssertEventually(s Surface, p *report.Printer, c Check, timeout time.Duration) error {
	ok, err := s.WaitVisible(c.Selector, timeout)
	if err != nil {
		return fmt.Errorf("wait for %s: %w", c.Selector, err)
	}
	return c.outcome(p, ok)
}

// AssertEach checks every match of selector individually. label is a format
// string taking the 1-based index. The match count is returned.
func AssertEach(s Surface, p *report.Printer, selector, noun, label string, sev Severity) (int, error) {
	n, err := s.Count(selector)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	p.Linef("Found %d %s", n, noun)
	for i := 0; i < n; i++ {
		c := Check{Label: fmt.Sprintf(label, i+1), Selector: selector, Severity: sev}
		ok := s.VisibleNth(selector, i)
		if sev == Advisory {
			p.Result(ok, c.Label)
			continue
		}
		if err := c.outcome(p, ok); err != nil {
			return n, err
		}
	}
	return n, nil
}
