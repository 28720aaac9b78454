package nav

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the registry, the tab controller and the navigator.
var (
	// ErrRouteNotFound matches any *RouteNotFoundError via errors.Is.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRoute is returned when a route name is registered twice.
	ErrDuplicateRoute = errors.New("route already registered")

	// ErrParamsMismatch is returned when a params value belongs to another route.
	ErrParamsMismatch = errors.New("params do not belong to route")

	// ErrAtRoot is returned by Pop when only the root frame remains.
	// It is recoverable: the stack is left untouched.
	ErrAtRoot = errors.New("already at root frame")

	// ErrBackDisabled is returned by Back when the visible frame disables the back gesture.
	ErrBackDisabled = errors.New("back navigation disabled for this frame")

	// ErrUnknownTab is returned for values outside the five main tabs.
	ErrUnknownTab = errors.New("unknown tab")
)

// RouteNotFoundError reports navigation to a name with no descriptor.
// It always indicates a wiring defect, never a user error.
type RouteNotFoundError struct {
	Name RouteName
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("nav: route %q is not registered", string(e.Name))
}

// Is lets errors.Is(err, ErrRouteNotFound) match.
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// IsRouteNotFound checks if an error reports a missing route descriptor.
func IsRouteNotFound(err error) bool {
	var rnf *RouteNotFoundError
	return errors.As(err, &rnf)
}
