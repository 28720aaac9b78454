package nav

import (
	"fmt"
	"log/slog"
)

// EventKind identifies a navigation state change.
type EventKind int

const (
	EventPush EventKind = iota
	EventPop
	EventReplace
	EventPopToRoot
	EventTab
)

func (k EventKind) String() string {
	switch k {
	case EventPush:
		return "push"
	case EventPop:
		return "pop"
	case EventReplace:
		return "replace"
	case EventPopToRoot:
		return "pop_to_root"
	case EventTab:
		return "tab"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after every state change.
type Event struct {
	Kind    EventKind
	Top     *Frame
	Removed []*Frame
	FromTab Tab
	ToTab   Tab
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for navigation events and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithStrict makes missing routes panic instead of returning an error.
// Development builds run strict so wiring defects surface immediately.
func WithStrict(strict bool) Option {
	return func(n *Navigator) { n.strict = strict }
}

// Navigator is the stack controller. It owns the ordered frames of the root
// stack; the last frame is visible. It is not safe for concurrent use and is
// meant to be driven from the UI event loop.
type Navigator struct {
	registry  *Registry
	frames    []*Frame
	logger    *slog.Logger
	strict    bool
	listeners []func(Event)
}

// New creates a navigator whose stack starts with a single root frame.
func New(registry *Registry, root RouteName, params Params, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	f, err := n.frame(root, params)
	if err != nil {
		return nil, err
	}
	n.frames = []*Frame{f}
	n.logger.Debug("navigator started", "route", string(root))
	return n, nil
}

// OnChange registers a listener for navigation events.
func (n *Navigator) OnChange(fn func(Event)) {
	n.listeners = append(n.listeners, fn)
}

// Registry returns the route registry the navigator validates against.
func (n *Navigator) Registry() *Registry {
	return n.registry
}

// Push appends a frame for route. On error the stack is unchanged.
// The covered frame's screen is deactivated: its scope is released.
func (n *Navigator) Push(route RouteName, params Params) error {
	f, err := n.frame(route, params)
	if err != nil {
		return err
	}
	n.Top().Scope().Release()
	n.frames = append(n.frames, f)
	n.logger.Info("push", "route", string(route), "depth", len(n.frames))
	n.emit(Event{Kind: EventPush, Top: f})
	return nil
}

// Pop removes the top frame. With a single frame left it does nothing and
// returns ErrAtRoot.
func (n *Navigator) Pop() error {
	if len(n.frames) <= 1 {
		n.logger.Warn("pop at root ignored", "route", string(n.Top().Route))
		return ErrAtRoot
	}
	top := n.frames[len(n.frames)-1]
	n.frames[len(n.frames)-1] = nil
	n.frames = n.frames[:len(n.frames)-1]
	top.release()
	n.logger.Info("pop", "route", string(top.Route), "depth", len(n.frames))
	n.emit(Event{Kind: EventPop, Top: n.Top(), Removed: []*Frame{top}})
	return nil
}

// Back is the user's back gesture: Pop, unless the visible frame's
// presentation disables it.
func (n *Navigator) Back() error {
	if !n.Top().Transition.BackGesture {
		return ErrBackDisabled
	}
	return n.Pop()
}

// Replace swaps the top frame for a new one without keeping history.
func (n *Navigator) Replace(route RouteName, params Params) error {
	f, err := n.frame(route, params)
	if err != nil {
		return err
	}
	old := n.frames[len(n.frames)-1]
	n.frames[len(n.frames)-1] = f
	old.release()
	n.logger.Info("replace", "from", string(old.Route), "to", string(route), "depth", len(n.frames))
	n.emit(Event{Kind: EventReplace, Top: f, Removed: []*Frame{old}})
	return nil
}

// PopToRoot truncates the stack to its first frame and returns how many
// frames were removed. At depth 1 it is a no-op.
func (n *Navigator) PopToRoot() int {
	if len(n.frames) <= 1 {
		return 0
	}
	removed := make([]*Frame, 0, len(n.frames)-1)
	for i := len(n.frames) - 1; i >= 1; i-- {
		removed = append(removed, n.frames[i])
		n.frames[i].release()
		n.frames[i] = nil
	}
	n.frames = n.frames[:1]
	n.logger.Info("pop to root", "removed", len(removed), "route", string(n.frames[0].Route))
	n.emit(Event{Kind: EventPopToRoot, Top: n.frames[0], Removed: removed})
	return len(removed)
}

// NavigateToTab jumps home and selects tab in one action: PopToRoot followed
// by setting the root tabs container's active tab. When the root is not the
// tabs container yet (the Welcome gateway), the root is replaced by MainTabs
// opened on tab.
func (n *Navigator) NavigateToTab(tab Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("nav: navigate to tab %d: %w", int(tab), ErrUnknownTab)
	}
	n.PopToRoot()
	root := n.frames[0]
	if root.Tabs == nil {
		return n.Replace(RouteMainTabs, MainTabsParams{Screen: tab})
	}
	_, err := root.Tabs.SetActiveTab(tab)
	return err
}

// Close releases the resources of every frame, top first. It ends the
// navigation session; the navigator must not be used afterwards.
func (n *Navigator) Close() {
	for i := len(n.frames) - 1; i >= 0; i-- {
		n.frames[i].release()
	}
	n.listeners = nil
	n.logger.Debug("navigator closed", "depth", len(n.frames))
}

// Top returns the visible frame.
func (n *Navigator) Top() *Frame {
	return n.frames[len(n.frames)-1]
}

// Depth returns the number of frames on the stack.
func (n *Navigator) Depth() int {
	return len(n.frames)
}

// Frames returns a copy of the stack, root first.
func (n *Navigator) Frames() []*Frame {
	out := make([]*Frame, len(n.frames))
	copy(out, n.frames)
	return out
}

// Tabs returns the controller of the nearest tabs container at or below the
// top of the stack, or nil when no tabs container is mounted.
func (n *Navigator) Tabs() *TabController {
	for i := len(n.frames) - 1; i >= 0; i-- {
		if n.frames[i].Tabs != nil {
			return n.frames[i].Tabs
		}
	}
	return nil
}

// Visible resolves the screen shown to the user by walking the frame tree.
func (n *Navigator) Visible() Screen {
	top := n.Top()
	s := Screen{Frame: top, Route: top.Route}
	if top.Tabs != nil {
		s.Tab = top.Tabs.Active()
		s.InTabs = true
	}
	return s
}

func (n *Navigator) frame(route RouteName, params Params) (*Frame, error) {
	d, err := n.registry.Lookup(route)
	if err != nil {
		n.logger.Error("navigation to undeclared route", "route", string(route), "error", err)
		if n.strict {
			panic(err)
		}
		return nil, err
	}
	f, err := newFrame(d, params)
	if err != nil {
		return nil, err
	}
	if f.Tabs != nil {
		f.Tabs.OnChange(func(from, to Tab) {
			n.logger.Info("tab", "from", from.String(), "to", to.String())
			n.emit(Event{Kind: EventTab, Top: n.Top(), FromTab: from, ToTab: to})
		})
	}
	return f, nil
}

func (n *Navigator) emit(e Event) {
	for _, fn := range n.listeners {
		fn(e)
	}
}
