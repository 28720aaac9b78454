package nav

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/laagtabai/laag-tui/internal/catalog"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTabsNavigator(t *testing.T, opts ...Option) *Navigator {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	n, err := New(DefaultRegistry(), RouteMainTabs, MainTabsParams{Screen: TabExplore}, opts...)
	if err != nil {
		t.Fatalf("new navigator: %v", err)
	}
	return n
}

// every route any screen navigates to must be declared
func TestRegistryCompleteness(t *testing.T) {
	reg := DefaultRegistry()
	used := []RouteName{
		RouteSplash, RouteOnboarding, RoutePermissions, RouteWelcome, RouteMainTabs,
		RouteFullMap, RouteTransitInfo, RouteLandmarkDetails, RouteAIChat, RouteAchievementDetails,
	}
	for _, name := range used {
		d, err := reg.Lookup(name)
		if err != nil {
			t.Fatalf("route %s not registered: %v", name, err)
		}
		if d.Zero.Route() != name {
			t.Fatalf("route %s has params for %s", name, d.Zero.Route())
		}
	}
	if got := len(reg.Names()); got != len(used) {
		t.Fatalf("expected %d routes, got %d", len(used), got)
	}
}

func TestRegistryRejectsDuplicatesAndUnknown(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Descriptor{Name: RouteSplash, Zero: SplashParams{}, Presentation: PresentationReplace}); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.Register(Descriptor{Name: RouteSplash, Zero: SplashParams{}})
	if !errors.Is(err, ErrDuplicateRoute) {
		t.Fatalf("expected ErrDuplicateRoute, got %v", err)
	}
	_, err = reg.Lookup("Login")
	if !IsRouteNotFound(err) {
		t.Fatalf("expected route not found, got %v", err)
	}
	var nf *RouteNotFoundError
	if !errors.As(err, &nf) || nf.Name != "Login" {
		t.Fatalf("expected RouteNotFoundError naming Login, got %#v", err)
	}
}

func TestParamSchema(t *testing.T) {
	d, _ := DefaultRegistry().Lookup(RouteAIChat)
	schema := d.ParamSchema()
	if schema["Title"] != "string" || schema["LandmarkID"] != "string" {
		t.Fatalf("unexpected schema %v", schema)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	n := newTabsNavigator(t)
	before := n.Frames()
	params := LandmarkDetailsParams{LandmarkID: "f1", Title: "Magellan's Cross"}
	if err := n.Push(RouteLandmarkDetails, params); err != nil {
		t.Fatalf("push: %v", err)
	}
	if n.Depth() != 2 || n.Top().Params != Params(params) {
		t.Fatalf("unexpected top after push: %+v", n.Top())
	}
	if err := n.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	after := n.Frames()
	if len(after) != len(before) {
		t.Fatalf("depth changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Params != after[i].Params {
			t.Fatalf("frame %d differs after round trip", i)
		}
	}
}

func TestPopAtRootIsNoop(t *testing.T) {
	n := newTabsNavigator(t)
	root := n.Top().ID
	if err := n.Pop(); !errors.Is(err, ErrAtRoot) {
		t.Fatalf("expected ErrAtRoot, got %v", err)
	}
	if n.Depth() != 1 || n.Top().ID != root {
		t.Fatalf("pop at root changed the stack")
	}
}

func TestBackDisabledOnTabs(t *testing.T) {
	n := newTabsNavigator(t)
	if err := n.Back(); !errors.Is(err, ErrBackDisabled) {
		t.Fatalf("expected ErrBackDisabled, got %v", err)
	}
	_ = n.Push(RouteFullMap, nil)
	if err := n.Back(); err != nil {
		t.Fatalf("back from full map: %v", err)
	}
}

func TestPopToRootIdempotent(t *testing.T) {
	n := newTabsNavigator(t)
	_ = n.Push(RouteLandmarkDetails, nil)
	_ = n.Push(RouteAIChat, AIChatParams{Title: "x"})
	if removed := n.PopToRoot(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	frames := n.Frames()
	if removed := n.PopToRoot(); removed != 0 {
		t.Fatalf("second PopToRoot removed %d", removed)
	}
	if len(frames) != 1 || n.Top().ID != frames[0].ID {
		t.Fatalf("PopToRoot not idempotent")
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	n, err := New(DefaultRegistry(), RouteSplash, nil, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, r := range []RouteName{RouteOnboarding, RoutePermissions, RouteWelcome} {
		if err := n.Replace(r, nil); err != nil {
			t.Fatalf("replace %s: %v", r, err)
		}
		if n.Depth() != 1 || n.Top().Route != r {
			t.Fatalf("expected %s at depth 1", r)
		}
	}
	if err := n.NavigateToTab(TabScan); err != nil {
		t.Fatalf("navigate to tab: %v", err)
	}
	v := n.Visible()
	if v.Route != RouteMainTabs || v.Tab != TabScan || n.Depth() != 1 {
		t.Fatalf("expected MainTabs/Scan at root, got %s", v)
	}
}

func TestUnknownRouteLeavesStackUnchanged(t *testing.T) {
	n := newTabsNavigator(t)
	_ = n.Push(RouteFullMap, nil)
	before := n.Frames()
	err := n.Push("AchievementDetail", nil)
	if !IsRouteNotFound(err) {
		t.Fatalf("expected route not found, got %v", err)
	}
	if err := n.Replace("Login", nil); !IsRouteNotFound(err) {
		t.Fatalf("expected route not found on replace, got %v", err)
	}
	after := n.Frames()
	if len(after) != len(before) || after[1].ID != before[1].ID {
		t.Fatalf("stack changed after failed navigation")
	}
}

func TestStrictModePanicsOnUnknownRoute(t *testing.T) {
	n := newTabsNavigator(t, WithStrict(true))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic in strict mode")
		}
	}()
	_ = n.Push("Login", nil)
}

func TestParamsMismatch(t *testing.T) {
	n := newTabsNavigator(t)
	err := n.Push(RouteLandmarkDetails, AIChatParams{})
	if !errors.Is(err, ErrParamsMismatch) {
		t.Fatalf("expected ErrParamsMismatch, got %v", err)
	}
	if n.Depth() != 1 {
		t.Fatalf("mismatched push changed the stack")
	}
}

func TestSetActiveTabEmitsOnce(t *testing.T) {
	n := newTabsNavigator(t)
	var events []Event
	n.OnChange(func(e Event) { events = append(events, e) })
	tabs := n.Tabs()
	for i := 0; i < 2; i++ {
		if _, err := tabs.SetActiveTab(TabMastery); err != nil {
			t.Fatalf("set tab: %v", err)
		}
	}
	if len(events) != 1 || events[0].Kind != EventTab || events[0].FromTab != TabExplore || events[0].ToTab != TabMastery {
		t.Fatalf("expected a single tab event, got %+v", events)
	}
	if changed, _ := tabs.OnTabPress(TabMastery); changed {
		t.Fatalf("pressing the active tab should do nothing")
	}
	if _, err := tabs.SetActiveTab(Tab(42)); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
	if tabs.Active() != TabMastery {
		t.Fatalf("invalid tab changed the active tab")
	}
}

func TestTabCycling(t *testing.T) {
	c := NewTabController(Tab(-1))
	if c.Active() != TabExplore {
		t.Fatalf("invalid initial tab should fall back to Explore")
	}
	c.Prev()
	if c.Active() != TabProfile {
		t.Fatalf("prev should wrap to Profile, got %s", c.Active())
	}
	c.Next()
	if c.Active() != TabExplore {
		t.Fatalf("next should wrap to Explore, got %s", c.Active())
	}
	if tab, err := ParseTab("archives"); err != nil || tab != TabArchives {
		t.Fatalf("parse tab: %v %v", tab, err)
	}
}

// favourite from a details screen opened on Explore lands on Archives
func TestFavoriteScenario(t *testing.T) {
	n := newTabsNavigator(t)
	if err := n.Push(RouteLandmarkDetails, LandmarkDetailsParams{LandmarkID: "f1", Title: "Magellan's Cross"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	n.PopToRoot()
	if err := n.NavigateToTab(TabArchives); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	v := n.Visible()
	if n.Depth() != 1 || v.Route != RouteMainTabs || v.Tab != TabArchives {
		t.Fatalf("expected MainTabs/Archives at depth 1, got %s depth %d", v, n.Depth())
	}
}

func TestNavigateToTabFromDeepStack(t *testing.T) {
	n := newTabsNavigator(t)
	ach := catalog.Achievement{ID: "1", Title: "First Steps"}
	_ = n.Push(RouteAchievementDetails, AchievementDetailsParams{Achievement: ach})
	_ = n.Push(RouteLandmarkDetails, nil)
	_ = n.Push(RouteAIChat, nil)
	var kinds []EventKind
	n.OnChange(func(e Event) { kinds = append(kinds, e.Kind) })
	if err := n.NavigateToTab(TabProfile); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != EventPopToRoot || kinds[1] != EventTab {
		t.Fatalf("unexpected events %v", kinds)
	}
	if err := n.NavigateToTab(Tab(9)); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
}

func TestTransitions(t *testing.T) {
	reg := DefaultRegistry()
	cases := map[RouteName]Transition{
		RouteOnboarding:         {Animation: AnimationFade, Chrome: ChromeReplacesTabBar, BackGesture: true},
		RouteMainTabs:           {Animation: AnimationFade, Chrome: ChromeShowsTabBar, BackGesture: false},
		RouteLandmarkDetails:    {Animation: AnimationSlideFromBottom, Chrome: ChromeAboveTabBar, BackGesture: true},
		RouteAchievementDetails: {Animation: AnimationSlideFromBottom, Chrome: ChromeAboveTabBar, BackGesture: true},
	}
	for name, want := range cases {
		d, err := reg.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if got := TransitionFor(d); got != want {
			t.Fatalf("%s: got %+v want %+v", name, got, want)
		}
	}
	push := TransitionFor(Descriptor{Presentation: PresentationPush})
	if push.Animation != AnimationSlideFromRight || push.Chrome != ChromeAboveTabBar {
		t.Fatalf("unexpected push transition %+v", push)
	}
}

func TestScopeReleasedOnEveryExitPath(t *testing.T) {
	n := newTabsNavigator(t)
	released := 0
	acquire := func() { n.Top().Scope().Acquire(func() { released++ }) }

	acquire() // Explore tab
	_ = n.Push(RouteFullMap, nil)
	if released != 1 {
		t.Fatalf("push should release the covered screen, released=%d", released)
	}
	acquire() // FullMap
	_ = n.Pop()
	if released != 2 {
		t.Fatalf("pop should release the removed screen, released=%d", released)
	}
	acquire() // Explore again
	_, _ = n.Tabs().SetActiveTab(TabScan)
	if released != 3 {
		t.Fatalf("tab switch should release the previous tab, released=%d", released)
	}
	_ = n.Push(RouteTransitInfo, nil)
	acquire()
	_ = n.Replace(RouteLandmarkDetails, nil)
	if released != 4 {
		t.Fatalf("replace should release the old screen, released=%d", released)
	}
	acquire()
	n.PopToRoot()
	if released != 5 {
		t.Fatalf("pop to root should release removed screens, released=%d", released)
	}
	acquire()
	n.Close()
	if released != 6 {
		t.Fatalf("close should release everything, released=%d", released)
	}
}

func TestScopeTimersStopOnRelease(t *testing.T) {
	s := NewScope()
	fired := make(chan struct{}, 16)
	s.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	s.Every(5*time.Millisecond, func() { fired <- struct{}{} })
	if s.Len() != 2 {
		t.Fatalf("expected 2 resources, got %d", s.Len())
	}
	s.Release()
	if s.Len() != 0 {
		t.Fatalf("release should empty the scope")
	}
	// drain anything that fired before release
	time.Sleep(20 * time.Millisecond)
	for len(fired) > 0 {
		<-fired
	}
	time.Sleep(30 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("timer fired after release")
	}
}

func TestScopeReleaseOrder(t *testing.T) {
	s := NewScope()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.Acquire(func() { order = append(order, i) })
	}
	s.Release()
	if len(order) != 3 || order[0] != 2 || order[2] != 0 {
		t.Fatalf("expected newest-first release, got %v", order)
	}
}
