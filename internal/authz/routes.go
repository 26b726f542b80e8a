package authz

import "strings"

// Screen route paths. Handlers mount under these prefixes and the
// permission table below is keyed by them.
const (
	PathLogin        = "/auth/login"
	PathDashboard    = "/dashboard"
	PathUsers        = "/users"
	PathAgencies     = "/agencies"
	PathCars         = "/cars"
	PathClients      = "/clients"
	PathBookings     = "/bookings"
	PathCalendar     = "/calendar"
	PathTransactions = "/transactions"
	PathFAQ          = "/settings/faq"
	PathProfile      = "/settings/profile"
	PathPassword     = "/settings/password"
)

// routePermissions maps a path prefix to the set of roles allowed to enter
// it. A path with no matching prefix is denied to every role.
var routePermissions = map[string][]Role{
	PathDashboard:    {RoleSuperAdmin},
	PathUsers:        {RoleSuperAdmin},
	PathAgencies:     {RoleSuperAdmin},
	PathFAQ:          {RoleSuperAdmin},
	PathCars:         {RoleSuperAdmin, RoleAdmin, RoleEmployee},
	PathClients:      {RoleSuperAdmin, RoleAdmin, RoleEmployee},
	PathBookings:     {RoleSuperAdmin, RoleAdmin, RoleEmployee},
	PathCalendar:     {RoleSuperAdmin, RoleAdmin, RoleEmployee},
	PathTransactions: {RoleSuperAdmin},
	PathProfile:      {RoleSuperAdmin, RoleAdmin, RoleEmployee},
	PathPassword:     {RoleSuperAdmin, RoleAdmin, RoleEmployee},
}

// AllowedRoles returns the role set registered for the narrowest prefix of
// path, or nil when no registered prefix matches. "/users/42" is authorized
// against "/users"; "/userstats" is not.
func AllowedRoles(path string) []Role {
	var (
		best  string
		roles []Role
		found bool
	)
	for prefix, allowed := range routePermissions {
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		if !found || len(prefix) > len(best) {
			best = prefix
			roles = allowed
			found = true
		}
	}
	if !found {
		return nil
	}
	return roles
}

// IsAuthorized reports whether the role may enter the path. Unregistered
// paths are denied to every role.
func IsAuthorized(role Role, path string) bool {
	for _, allowed := range AllowedRoles(path) {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultLandingRoute is where an actor lands after login and where denied
// navigations are redirected to.
func DefaultLandingRoute(role Role) string {
	if role == RoleSuperAdmin {
		return PathDashboard
	}
	return PathCars
}
