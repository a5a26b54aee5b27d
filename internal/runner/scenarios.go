package runner

import (
	"context"
	"fmt"

	"sitecheck/internal/browser"
	"sitecheck/internal/check"
)

// Selectors the target site exposes.
const (
	SelHero       = "h1"
	SelHowItWorks = "#how-it-works"
	SelPricing    = "#pricing"
	SelSignup     = "#signup"
	SelFadeIn     = ".fade-in-section"
	SelFlipCard   = ".step-circle-container"
	SelHamburger  = `.hamburger, .nav-toggle, [aria-label*="menu"], button:has(svg)`
)

// RuntimeScenarios are the JavaScript-disabled, reduced-motion and
// mobile-touch checks, in run order.
func RuntimeScenarios() []Scenario {
	return []Scenario{
		{Name: "js-disabled", Title: "JavaScript Disabled", Profile: browser.NoScript, Run: jsDisabled},
		{Name: "reduced-motion", Title: "Reduced Motion", Profile: browser.ReducedMotion, Run: reducedMotion},
		{Name: "mobile-tap", Title: "Mobile Touch (Sticky Hover Test)", Profile: browser.Mobile, Run: mobileTouch},
	}
}

// Content must be visible without any script running.
func jsDisabled(ctx context.Context, env *Env) error {
	if err := env.Page.Navigate(ctx, env.URL, browser.DOMContentLoaded); err != nil {
		return err
	}
	if err := env.Checkpoint("", true); err != nil {
		return err
	}

	for _, c := range []check.Check{
		{Label: "Hero headline", Selector: SelHero},
		{Label: "How It Works section", Selector: SelHowItWorks},
		{Label: "Pricing section", Selector: SelPricing},
	} {
		if err := check.Assert(env.Page, env.Out, c); err != nil {
			return err
		}
	}

	_, err := check.AssertEach(env.Page, env.Out, SelFadeIn, "fade-in sections", "Fade-in section %d visible", check.Fatal)
	return err
}

// Sections must be in their end state with no settle time.
func reducedMotion(ctx context.Context, env *Env) error {
	if err := env.Page.Navigate(ctx, env.URL, browser.NetworkIdle); err != nil {
		return err
	}
	if err := env.Checkpoint("top", false); err != nil {
		return err
	}

	if err := env.Page.ScrollIntoView(SelHowItWorks); err != nil {
		env.Log.Warn("scroll failed", "selector", SelHowItWorks, "error", err.Error())
	}
	if err := env.Checkpoint("how-it-works", false); err != nil {
		return err
	}

	if err := check.Assert(env.Page, env.Out, check.Check{
		Label:    "How It Works visible under reduced motion",
		Selector: SelHowItWorks,
	}); err != nil {
		return err
	}

	_, err := check.AssertEach(env.Page, env.Out, SelFlipCard, "flip cards", "Flip card %d visible", check.Advisory)
	return err
}

// A tap flips the first card and a second tap flips it back.
func mobileTouch(ctx context.Context, env *Env) error {
	if err := env.Page.Navigate(ctx, env.URL, browser.NetworkIdle); err != nil {
		return err
	}
	if err := env.Page.ScrollIntoView(SelHowItWorks); err != nil {
		env.Log.Warn("scroll failed", "selector", SelHowItWorks, "error", err.Error())
	}
	if ok, err := env.Page.WaitVisible(SelFlipCard, env.Settle); err != nil {
		return fmt.Errorf("wait for %s: %w", SelFlipCard, err)
	} else if !ok {
		env.Log.Warn("flip card not visible after scroll", "selector", SelFlipCard)
	}

	initial, err := env.Page.HasClass(SelFlipCard, check.FlippedClass)
	if err != nil {
		return fmt.Errorf("read flip state: %w", err)
	}
	if initial {
		env.Out.Linef("Initial state: flipped (icons)")
	} else {
		env.Out.Linef("Initial state: not flipped (numbers)")
	}

	first, err := check.Toggle(env.Page, SelFlipCard, check.FlippedClass, env.Settle)
	if err != nil {
		return err
	}
	if err := env.Checkpoint("flip", false); err != nil {
		return err
	}
	env.Out.Linef("After first tap: %s", check.Describe(first.After))

	second, err := check.Toggle(env.Page, SelFlipCard, check.FlippedClass, env.Settle)
	if err != nil {
		return err
	}
	if err := env.Checkpoint("unflip", false); err != nil {
		return err
	}
	env.Out.Linef("After second tap: %s", check.Describe(second.After))

	if check.RoundTrip(first, second) {
		env.Out.Pass("Mobile tap toggle working correctly")
	} else {
		env.Out.Warn("Toggle states may not have changed as expected, but visual check in screenshots")
	}
	return nil
}

// MobileSmoke is the production mobile check: hero, navigation, the
// scroll-revealed sections, a flip-card tap and the console error report.
func MobileSmoke() []Scenario {
	return []Scenario{
		{Name: "prod-mobile", Title: "Production Mobile", Profile: browser.Mobile, Run: mobileSmoke},
	}
}

func mobileSmoke(ctx context.Context, env *Env) error {
	if err := env.Page.Navigate(ctx, env.URL, browser.NetworkIdle); err != nil {
		return err
	}
	if err := env.Checkpoint("hero", false); err != nil {
		return err
	}
	if err := check.Assert(env.Page, env.Out, check.Check{Label: "Hero renders on mobile", Selector: SelHero}); err != nil {
		return err
	}

	if err := check.Assert(env.Page, env.Out, check.Check{
		Label:    "Mobile nav (hamburger) visible",
		Selector: SelHamburger,
		Severity: check.Advisory,
		Warning:  "Hamburger not found (may use different selector)",
	}); err != nil {
		return err
	}

	if err := scrollTo(env, SelHowItWorks, "how-it-works", "How It Works section renders"); err != nil {
		return err
	}

	res, err := check.Toggle(env.Page, SelFlipCard, check.FlippedClass, env.Settle)
	if err != nil {
		return err
	}
	if res.Changed() {
		env.Out.Pass("Flip card tap toggle works")
	} else {
		env.Out.Warn("Flip card state did not change on tap")
	}

	if err := scrollTo(env, SelSignup, "form", "Signup form renders on mobile"); err != nil {
		return err
	}

	if errs := env.Page.ConsoleErrors(); len(errs) > 0 {
		env.Out.Blank()
		env.Out.Fail("Console errors found:")
		env.Out.List(errs)
	} else {
		env.Out.Pass("No console errors")
	}
	return nil
}

func scrollTo(env *Env, selector, checkpoint, label string) error {
	if err := env.Page.ScrollIntoView(selector); err != nil {
		return fmt.Errorf("scroll to %s: %w", selector, err)
	}
	c := check.Check{Label: label, Selector: selector}
	if err := check.AssertEventually(env.Page, env.Out, c, env.Settle); err != nil {
		return err
	}
	return env.Checkpoint(checkpoint, false)
}
