package nav

// Animation is the entry/exit animation class of a frame.
type Animation int

const (
	AnimationSlideFromRight Animation = iota
	AnimationSlideFromBottom
	AnimationFade
)

func (a Animation) String() string {
	switch a {
	case AnimationSlideFromRight:
		return "slide_from_right"
	case AnimationSlideFromBottom:
		return "slide_from_bottom"
	case AnimationFade:
		return "fade"
	default:
		return "none"
	}
}

// Chrome says how a frame relates to the tab bar.
type Chrome int

const (
	ChromeAboveTabBar    Chrome = iota // drawn over the tabs, tab bar not interactive
	ChromeReplacesTabBar               // full screen, no tab bar at all
	ChromeShowsTabBar                  // the tabs container itself
)

// Transition is the static presentation policy for a frame.
type Transition struct {
	Animation   Animation
	Chrome      Chrome
	BackGesture bool
}

var presentationTransitions = map[Presentation]Transition{
	PresentationPush:    {Animation: AnimationSlideFromRight, Chrome: ChromeAboveTabBar, BackGesture: true},
	PresentationModal:   {Animation: AnimationSlideFromBottom, Chrome: ChromeAboveTabBar, BackGesture: true},
	PresentationReplace: {Animation: AnimationFade, Chrome: ChromeReplacesTabBar, BackGesture: true},
}

// The tabs container must not be backed out of into onboarding.
var containerTransition = Transition{Animation: AnimationFade, Chrome: ChromeShowsTabBar, BackGesture: false}

// TransitionFor returns the presentation policy of a route descriptor.
func TransitionFor(d Descriptor) Transition {
	if d.Container {
		return containerTransition
	}
	return presentationTransitions[d.Presentation]
}
