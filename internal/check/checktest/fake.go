// Package checktest provides an in-memory check.Surface for tests.
package checktest

import (
	"fmt"
	"time"
)

// Element is one fake node.
type Element struct {
	Visible bool
	// RevealOnScroll makes the element visible once scrolled into view.
	RevealOnScroll bool
	Classes        map[string]bool
	// TapToggles names the class a tap toggles.
	TapToggles string
}

// Page is a fake rendered page keyed by selector.
type Page struct {
	Elements map[string][]*Element
	Scrolled []string
	Tapped   []string
	Waits    []time.Duration
	// TapErr is returned from every Tap when set.
	TapErr error
}

// NewPage returns an empty Page.
func NewPage() *Page {
	return &Page{Elements: map[string][]*Element{}}
}

// Add registers elements under selector and returns the page for chaining.
func (p *Page) Add(selector string, els ...*Element) *Page {
	p.Elements[selector] = append(p.Elements[selector], els...)
	return p
}

func (p *Page) first(selector string) *Element {
	els := p.Elements[selector]
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

func (p *Page) Visible(selector string) bool {
	el := p.first(selector)
	return el != nil && el.Visible
}

func (p *Page) VisibleNth(selector string, i int) bool {
	els := p.Elements[selector]
	return i < len(els) && els[i].Visible
}

func (p *Page) Count(selector string) (int, error) {
	return len(p.Elements[selector]), nil
}

func (p *Page) ScrollIntoView(selector string) error {
	p.Scrolled = append(p.Scrolled, selector)
	el := p.first(selector)
	if el == nil {
		return fmt.Errorf("no element matches %s", selector)
	}
	if el.RevealOnScroll {
		el.Visible = true
	}
	return nil
}

func (p *Page) WaitVisible(selector string, timeout time.Duration) (bool, error) {
	p.Waits = append(p.Waits, timeout)
	return p.Visible(selector), nil
}

func (p *Page) HasClass(selector, class string) (bool, error) {
	el := p.first(selector)
	if el == nil {
		return false, fmt.Errorf("no element matches %s", selector)
	}
	return el.Classes[class], nil
}

func (p *Page) Tap(selector string) error {
	if p.TapErr != nil {
		return p.TapErr
	}
	el := p.first(selector)
	if el == nil {
		return fmt.Errorf("no element matches %s", selector)
	}
	p.Tapped = append(p.Tapped, selector)
	if el.TapToggles != "" {
		if el.Classes == nil {
			el.Classes = map[string]bool{}
		}
		el.Classes[el.TapToggles] = !el.Classes[el.TapToggles]
	}
	return nil
}

func (p *Page) WaitClass(selector, class string, want bool, timeout time.Duration) (bool, error) {
	p.Waits = append(p.Waits, timeout)
	got, err := p.HasClass(selector, class)
	if err != nil {
		return false, err
	}
	return got == want, nil
}
