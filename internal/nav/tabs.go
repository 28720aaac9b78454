package nav

import (
	"fmt"
	"strings"
)

// Tab is one of the five persistent sections of the main screen.
type Tab int

const (
	TabExplore Tab = iota
	TabArchives
	TabScan
	TabMastery
	TabProfile
)

// AllTabs lists the tabs in tab bar order.
var AllTabs = []Tab{TabExplore, TabArchives, TabScan, TabMastery, TabProfile}

func (t Tab) String() string {
	switch t {
	case TabExplore:
		return "Explore"
	case TabArchives:
		return "Archives"
	case TabScan:
		return "Scan"
	case TabMastery:
		return "Mastery"
	case TabProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the five tabs.
func (t Tab) Valid() bool {
	return t >= TabExplore && t <= TabProfile
}

// ParseTab resolves a tab name, case-insensitively.
func ParseTab(s string) (Tab, error) {
	for _, t := range AllTabs {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("nav: parse tab %q: %w", s, ErrUnknownTab)
}

// TabController tracks the active tab of a tabs container frame. It lives as
// long as that frame.
type TabController struct {
	active    Tab
	scopes    map[Tab]*Scope
	listeners []func(from, to Tab)
}

// NewTabController creates a controller with initial active. Invalid values
// fall back to Explore.
func NewTabController(initial Tab) *TabController {
	if !initial.Valid() {
		initial = TabExplore
	}
	scopes := make(map[Tab]*Scope, len(AllTabs))
	for _, t := range AllTabs {
		scopes[t] = NewScope()
	}
	return &TabController{active: initial, scopes: scopes}
}

// Active returns the highlighted tab.
func (c *TabController) Active() Tab {
	return c.active
}

// OnChange registers a listener called once per actual tab change.
func (c *TabController) OnChange(fn func(from, to Tab)) {
	c.listeners = append(c.listeners, fn)
}

// SetActiveTab switches to t. Setting the already active tab is a no-op and
// reports changed=false. The previous tab's scope is released.
func (c *TabController) SetActiveTab(t Tab) (changed bool, err error) {
	if !t.Valid() {
		return false, fmt.Errorf("nav: set active tab %d: %w", int(t), ErrUnknownTab)
	}
	if t == c.active {
		return false, nil
	}
	from := c.active
	c.scopes[from].Release()
	c.active = t
	for _, fn := range c.listeners {
		fn(from, t)
	}
	return true, nil
}

// OnTabPress handles a tab bar press. Pressing the active tab does nothing;
// there is no per-tab history to reset.
func (c *TabController) OnTabPress(t Tab) (bool, error) {
	if t == c.active {
		return false, nil
	}
	return c.SetActiveTab(t)
}

// Next activates the tab to the right, wrapping around.
func (c *TabController) Next() {
	_, _ = c.SetActiveTab(Tab((int(c.active) + 1) % len(AllTabs)))
}

// Prev activates the tab to the left, wrapping around.
func (c *TabController) Prev() {
	_, _ = c.SetActiveTab(Tab((int(c.active) - 1 + len(AllTabs)) % len(AllTabs)))
}

// Scope returns the scope of tab t's screen.
func (c *TabController) Scope(t Tab) *Scope {
	return c.scopes[t]
}

func (c *TabController) release() {
	for _, s := range c.scopes {
		s.Release()
	}
}
