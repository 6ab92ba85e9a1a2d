package views

import (
	"strings"
	"sync"

	"github.com/desertthunder/vtx/internal/models"
)

// Route identifies a screen.
type Route string

const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteUsers    Route = "/userspage"
	RouteVideo    Route = "/video"
)

// Location is a route plus the navigation state handed to it.
type Location struct {
	Route Route
	Path  string
	Video *models.Video // set only for RouteVideo when reached from a list
}

// VideoLocation builds the detail location for v, carrying a copy of v as state.
func VideoLocation(v models.Video) Location {
	return Location{Route: RouteVideo, Path: string(RouteVideo) + "/" + v.ID, Video: &v}
}

// ParseLocation maps a path to a location without navigation state.
//
// "/home" is an alias for the home route. Unknown paths resolve to home.
func ParseLocation(path string) Location {
	switch {
	case path == "" || path == "/" || path == "/home":
		return Location{Route: RouteHome, Path: "/"}
	case path == string(RouteLogin), path == string(RouteRegister), path == string(RouteUsers):
		return Location{Route: Route(path), Path: path}
	case strings.HasPrefix(path, string(RouteVideo)+"/"):
		return Location{Route: RouteVideo, Path: path}
	default:
		return Location{Route: RouteHome, Path: "/"}
	}
}

// Navigator tracks the current location and notifies listeners on change.
type Navigator struct {
	mu      sync.RWMutex
	current Location
	history []Location
	subs    []func(Location)
}

// NewNavigator starts at the home route.
func NewNavigator() *Navigator {
	return &Navigator{current: Location{Route: RouteHome, Path: "/"}}
}

// Navigate pushes loc.
func (n *Navigator) Navigate(loc Location) {
	if loc.Path == "" {
		loc.Path = string(loc.Route)
	}

	n.mu.Lock()
	n.history = append(n.history, n.current)
	n.current = loc
	subs := append([]func(Location){}, n.subs...)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(loc)
	}
}

// Go navigates to route with no state.
func (n *Navigator) Go(route Route) {
	n.Navigate(Location{Route: route, Path: string(route)})
}

// Replace swaps the current location without recording history. Used for redirects.
func (n *Navigator) Replace(loc Location) {
	if loc.Path == "" {
		loc.Path = string(loc.Route)
	}

	n.mu.Lock()
	n.current = loc
	subs := append([]func(Location){}, n.subs...)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(loc)
	}
}

// Back returns to the previous location. It reports false when there is none.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.history) == 0 {
		n.mu.Unlock()
		return false
	}
	loc := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.current = loc
	subs := append([]func(Location){}, n.subs...)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(loc)
	}
	return true
}

// Current returns the current location.
func (n *Navigator) Current() Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Subscribe registers fn to run after every location change.
func (n *Navigator) Subscribe(fn func(Location)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}
