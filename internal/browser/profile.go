package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Viewport is a page size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Profile is the device emulation a session is created with.
type Profile struct {
	Name               string
	Viewport           *Viewport // nil keeps the browser default
	IsMobile           bool
	HasTouch           bool
	JavaScriptDisabled bool
	ReducedMotion      bool
}

// Preset profiles.
var (
	Desktop = Profile{Name: "desktop"}
	Mobile  = Profile{
		Name:     "mobile",
		Viewport: &Viewport{Width: 390, Height: 844},
		IsMobile: true,
		HasTouch: true,
	}
	NoScript      = Profile{Name: "js-disabled", JavaScriptDisabled: true}
	ReducedMotion = Profile{Name: "reduced-motion", ReducedMotion: true}
)

// contextOptions maps a profile onto Playwright context options. videoDir
// enables recording when non-empty.
func contextOptions(p Profile, videoDir string) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		JavaScriptEnabled: playwright.Bool(!p.JavaScriptDisabled),
	}
	if p.Viewport != nil {
		opts.Viewport = &playwright.Size{Width: p.Viewport.Width, Height: p.Viewport.Height}
	}
	if p.IsMobile {
		opts.IsMobile = playwright.Bool(true)
	}
	if p.HasTouch {
		opts.HasTouch = playwright.Bool(true)
	}
	if p.ReducedMotion {
		opts.ReducedMotion = playwright.ReducedMotionReduce
	}
	if videoDir != "" {
		size := &playwright.Size{Width: 1280, Height: 720}
		if opts.Viewport != nil {
			size = opts.Viewport
		}
		opts.RecordVideo = &playwright.RecordVideo{Dir: videoDir, Size: size}
	}
	return opts
}
