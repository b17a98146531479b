package nav

import (
	"github.com/spec-kit/pharmacy-pos/internal/client/routemap"
	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// Action is the outcome of a navigation check.
type Action int

const (
	// Allow renders the requested view.
	Allow Action = iota
	// Redirect sends the visitor to Decision.Target instead.
	Redirect
)

// Decision tells the dashboard what to do with the current navigation.
type Decision struct {
	Action Action
	Target string
}

// Decide gates a route change. No principal goes to the login page; a
// principal on a path outside its role's prefixes goes to the landing page.
// This is a UX convenience only: the server enforces the same rules on every
// API call, so bypassing the gate gains nothing.
func Decide(principal *domain.Principal, path string) Decision {
	if principal == nil {
		return Decision{Action: Redirect, Target: routemap.LoginPath}
	}
	if !routemap.Allows(principal.Role, path) {
		return Decision{Action: Redirect, Target: routemap.LandingPath}
	}
	return Decision{Action: Allow}
}
