package check

import (
	"errors"
	"fmt"
)

var (
	// ErrAssertion marks a failed fatal check.
	ErrAssertion = errors.New("assertion failed")
	// ErrNavigation marks an unreachable target or a readiness timeout.
	ErrNavigation = errors.New("navigation failed")
)

// AssertionError reports a required element that was not visible.
type AssertionError struct {
	Label    string
	Selector string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("Not visible: %s (%s)", e.Label, e.Selector)
}

func (e *AssertionError) Is(target error) bool { return target == ErrAssertion }

// NavigationError reports a failed page load.
type NavigationError struct {
	URL       string
	WaitUntil string
	Err       error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s (wait until %s): %v", e.URL, e.WaitUntil, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func (e *NavigationError) Is(target error) bool { return target == ErrNavigation }
