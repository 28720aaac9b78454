package nav

import (
	"fmt"

	"github.com/google/uuid"
)

// FrameKind tags the two frame variants.
type FrameKind int

const (
	FrameLeaf FrameKind = iota // a single screen
	FrameTabs                  // the tabs container, holding an active tab
)

// Frame is one entry of the navigation stack.
type Frame struct {
	ID           uuid.UUID
	Route        RouteName
	Params       Params
	Presentation Presentation
	Transition   Transition

	// Tabs is set only on FrameTabs frames.
	Tabs *TabController

	scope *Scope
}

func newFrame(d Descriptor, params Params) (*Frame, error) {
	if params == nil {
		params = d.Zero
	}
	if params.Route() != d.Name {
		return nil, fmt.Errorf("nav: %s params for route %q: %w", params.Route(), string(d.Name), ErrParamsMismatch)
	}
	f := &Frame{
		ID:           uuid.New(),
		Route:        d.Name,
		Params:       params,
		Presentation: d.Presentation,
		Transition:   TransitionFor(d),
		scope:        NewScope(),
	}
	if d.Container {
		initial := TabExplore
		if p, ok := params.(MainTabsParams); ok {
			initial = p.Screen
		}
		f.Tabs = NewTabController(initial)
	}
	return f, nil
}

// Kind reports whether the frame is a leaf or the tabs container.
func (f *Frame) Kind() FrameKind {
	if f.Tabs != nil {
		return FrameTabs
	}
	return FrameLeaf
}

// Scope returns the scope of the screen this frame currently shows. For the
// tabs container that is the active tab's scope.
func (f *Frame) Scope() *Scope {
	if f.Tabs != nil {
		return f.Tabs.Scope(f.Tabs.Active())
	}
	return f.scope
}

// release frees every resource held by the frame, all tabs included.
func (f *Frame) release() {
	f.scope.Release()
	if f.Tabs != nil {
		f.Tabs.release()
	}
}

// Screen is the result of resolving the visible screen through the frame tree.
type Screen struct {
	Frame *Frame
	Route RouteName
	// Tab is meaningful only when InTabs is true.
	Tab    Tab
	InTabs bool
}

func (s Screen) String() string {
	if s.InTabs {
		return fmt.Sprintf("%s/%s", s.Route, s.Tab)
	}
	return string(s.Route)
}
