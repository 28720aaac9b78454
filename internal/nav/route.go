package nav

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/laagtabai/laag-tui/internal/catalog"
)

// RouteName identifies a navigable screen.
type RouteName string

const (
	RouteSplash             RouteName = "Splash"
	RouteOnboarding         RouteName = "Onboarding"
	RoutePermissions        RouteName = "Permissions"
	RouteWelcome            RouteName = "Welcome"
	RouteMainTabs           RouteName = "MainTabs"
	RouteFullMap            RouteName = "FullMap"
	RouteTransitInfo        RouteName = "TransitInfo"
	RouteLandmarkDetails    RouteName = "LandmarkDetails"
	RouteAIChat             RouteName = "AIChat"
	RouteAchievementDetails RouteName = "AchievementDetails"
)

// Presentation is how a frame enters and leaves the screen.
type Presentation int

const (
	PresentationPush    Presentation = iota // slide in over the current frame
	PresentationModal                       // card sliding up over everything
	PresentationReplace                     // swaps the top frame, no history
)

func (p Presentation) String() string {
	switch p {
	case PresentationPush:
		return "push"
	case PresentationModal:
		return "modal"
	case PresentationReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Params is the parameter record carried by a frame. Each route has exactly
// one concrete Params type and Route reports which one.
type Params interface {
	Route() RouteName
}

type SplashParams struct{}

type OnboardingParams struct{}

type PermissionsParams struct{}

type WelcomeParams struct{}

// MainTabsParams selects the tab shown when the tabs container is mounted.
type MainTabsParams struct {
	Screen Tab
}

type FullMapParams struct{}

type TransitInfoParams struct{}

// LandmarkDetailsParams opens a landmark by id. Title is what the caller
// displayed; Item is the full record when the caller already has it.
type LandmarkDetailsParams struct {
	LandmarkID string
	Title      string
	Item       *catalog.Landmark
}

type AIChatParams struct {
	Title      string
	LandmarkID string
}

type AchievementDetailsParams struct {
	Achievement catalog.Achievement
}

func (SplashParams) Route() RouteName             { return RouteSplash }
func (OnboardingParams) Route() RouteName         { return RouteOnboarding }
func (PermissionsParams) Route() RouteName        { return RoutePermissions }
func (WelcomeParams) Route() RouteName            { return RouteWelcome }
func (MainTabsParams) Route() RouteName           { return RouteMainTabs }
func (FullMapParams) Route() RouteName            { return RouteFullMap }
func (TransitInfoParams) Route() RouteName        { return RouteTransitInfo }
func (LandmarkDetailsParams) Route() RouteName    { return RouteLandmarkDetails }
func (AIChatParams) Route() RouteName             { return RouteAIChat }
func (AchievementDetailsParams) Route() RouteName { return RouteAchievementDetails }

// Descriptor declares a route: its name, the zero value of its params type
// and its presentation mode. Container marks the tabs container route.
type Descriptor struct {
	Name         RouteName
	Zero         Params
	Presentation Presentation
	Container    bool
}

// ParamSchema maps each param field name to its Go type.
func (d Descriptor) ParamSchema() map[string]string {
	schema := make(map[string]string)
	if d.Zero == nil {
		return schema
	}
	t := reflect.TypeOf(d.Zero)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		schema[f.Name] = f.Type.String()
	}
	return schema
}

// Registry holds the route descriptors. It is populated once at start-up and
// only read afterwards.
type Registry struct {
	routes map[RouteName]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{routes: make(map[RouteName]Descriptor)}
}

// Register adds a descriptor. Names must be unique and the zero params must
// belong to the route.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("nav: register: empty route name")
	}
	if _, ok := r.routes[d.Name]; ok {
		return fmt.Errorf("nav: register %q: %w", string(d.Name), ErrDuplicateRoute)
	}
	if d.Zero == nil || d.Zero.Route() != d.Name {
		return fmt.Errorf("nav: register %q: %w", string(d.Name), ErrParamsMismatch)
	}
	r.routes[d.Name] = d
	return nil
}

// MustRegister is Register for start-up wiring; it panics on error.
func (r *Registry) MustRegister(d Descriptor) *Registry {
	if err := r.Register(d); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor for name or a *RouteNotFoundError.
func (r *Registry) Lookup(name RouteName) (Descriptor, error) {
	d, ok := r.routes[name]
	if !ok {
		return Descriptor{}, &RouteNotFoundError{Name: name}
	}
	return d, nil
}

// Names returns every registered route name, sorted.
func (r *Registry) Names() []RouteName {
	names := make([]RouteName, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// DefaultRegistry declares every route of the app.
func DefaultRegistry() *Registry {
	return NewRegistry().
		MustRegister(Descriptor{Name: RouteSplash, Zero: SplashParams{}, Presentation: PresentationReplace}).
		MustRegister(Descriptor{Name: RouteOnboarding, Zero: OnboardingParams{}, Presentation: PresentationReplace}).
		MustRegister(Descriptor{Name: RoutePermissions, Zero: PermissionsParams{}, Presentation: PresentationReplace}).
		MustRegister(Descriptor{Name: RouteWelcome, Zero: WelcomeParams{}, Presentation: PresentationReplace}).
		MustRegister(Descriptor{Name: RouteMainTabs, Zero: MainTabsParams{}, Presentation: PresentationReplace, Container: true}).
		MustRegister(Descriptor{Name: RouteFullMap, Zero: FullMapParams{}, Presentation: PresentationModal}).
		MustRegister(Descriptor{Name: RouteTransitInfo, Zero: TransitInfoParams{}, Presentation: PresentationModal}).
		MustRegister(Descriptor{Name: RouteLandmarkDetails, Zero: LandmarkDetailsParams{}, Presentation: PresentationModal}).
		MustRegister(Descriptor{Name: RouteAIChat, Zero: AIChatParams{}, Presentation: PresentationModal}).
		MustRegister(Descriptor{Name: RouteAchievementDetails, Zero: AchievementDetailsParams{}, Presentation: PresentationModal})
}
