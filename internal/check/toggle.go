package check

import (
	"fmt"
	"time"
)

// FlippedClass is the state class flip cards carry when showing their back.
const FlippedClass = "flipped"

// ToggleResult is the state class presence sampled around one tap.
type ToggleResult struct {
	Before bool
	After  bool
}

// Changed reports whether the tap inverted the state.
func (r ToggleResult) Changed() bool { return r.Before != r.After }

// Toggle taps the first match of selector and waits up to settle for the
// presence of class to invert.
func Toggle(s Surface, selector, class string, settle time.Duration) (ToggleResult, error) {
	before, err := s.HasClass(selector, class)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("read %q on %s: %w", class, selector, err)
	}
	if err := s.Tap(selector); err != nil {
		return ToggleResult{Before: before, After: before}, fmt.Errorf("tap %s: %w", selector, err)
	}
	if _, err := s.WaitClass(selector, class, !before, settle); err != nil {
		return ToggleResult{Before: before, After: before}, fmt.Errorf("wait for %q on %s: %w", class, selector, err)
	}
	after, err := s.HasClass(selector, class)
	if err != nil {
		return ToggleResult{Before: before, After: before}, fmt.Errorf("read %q on %s: %w", class, selector, err)
	}
	return ToggleResult{Before: before, After: after}, nil
}

// RoundTrip reports whether two consecutive toggles flipped the state and
// then restored it.
func RoundTrip(first, second ToggleResult) bool {
	return first.Changed() && second.Changed() && second.After == first.Before
}

// Describe renders a flip state the way the mobile check prints it.
func Describe(flipped bool) string {
	if flipped {
		return "flipped"
	}
	return "not flipped"
}
