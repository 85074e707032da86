// Package routeguard decides whether the current role may enter a route
// group, and where to send it otherwise. The decision is a pure function of
// its inputs; re-evaluation on external session changes is driven by the
// keystore watcher.
package routeguard

import (
	"careerhub/client/internal/token"
)

// Well-known routes. Each role has a fixed landing route it is redirected
// to when it hits a group it may not enter.
const (
	RouteLogin            = "/login"
	RouteHome             = "/home"
	RouteVacancyManager   = "/manage-vacancies"
	RouteCourseManager    = "/manage-courses"
	RouteAdminDashboard   = "/admindash"
)

type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// CanActivate grants access iff role is a member of allowed. Roles are
// normalized where they are decoded and stored, so membership here is a
// plain comparison. A denied role is redirected to its own landing route.
func CanActivate(allowed []token.Role, role token.Role) Decision {
	for _, a := range allowed {
		if role == a && role != "" {
			return allow()
		}
	}
	return redirect(DefaultRouteForRole(role))
}

// DefaultRouteForRole is total: every role maps to a landing route, and
// anything unrecognized (including no role) maps to login.
func DefaultRouteForRole(role token.Role) string {
	switch role {
	case token.RoleJobSeeker:
		return RouteHome
	case token.RoleEmployer:
		return RouteVacancyManager
	case token.RoleTrainer:
		return RouteCourseManager
	case token.RoleAdmin:
		return RouteAdminDashboard
	default:
		return RouteLogin
	}
}
