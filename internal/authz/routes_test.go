package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRolesPrefixMatch(t *testing.T) {
	assert.ElementsMatch(t, []Role{RoleSuperAdmin}, AllowedRoles("/users"))
	assert.ElementsMatch(t, []Role{RoleSuperAdmin}, AllowedRoles("/users/42"))
	assert.ElementsMatch(t, []Role{RoleSuperAdmin, RoleAdmin, RoleEmployee}, AllowedRoles("/cars/abc/details"))
}

func TestAllowedRolesNarrowestPrefixWins(t *testing.T) {
	// /settings/faq is registered separately from /settings/profile; the
	// narrower entry must decide.
	assert.ElementsMatch(t, []Role{RoleSuperAdmin}, AllowedRoles("/settings/faq"))
	assert.ElementsMatch(t, []Role{RoleSuperAdmin}, AllowedRoles("/settings/faq/12"))
	assert.ElementsMatch(t, []Role{RoleSuperAdmin, RoleAdmin, RoleEmployee}, AllowedRoles("/settings/profile"))
}

func TestTransactionHistorySuperAdminOnly(t *testing.T) {
	assert.ElementsMatch(t, []Role{RoleSuperAdmin}, AllowedRoles(PathTransactions))
	assert.False(t, IsAuthorized(RoleAdmin, PathTransactions))
	assert.False(t, IsAuthorized(RoleEmployee, PathTransactions))
}

func TestAllowedRolesDefaultDeny(t *testing.T) {
	assert.Nil(t, AllowedRoles("/reports"))
	assert.Nil(t, AllowedRoles("/settings"))
	// A registered path must match on a segment boundary, not raw prefix.
	assert.Nil(t, AllowedRoles("/userstats"))
}

func TestIsAuthorizedMatchesAllowedRoles(t *testing.T) {
	paths := []string{"/dashboard", "/users", "/agencies", "/settings/faq", "/cars", "/clients", "/bookings", "/calendar", "/transactions", "/nope"}
	roles := []Role{RoleSuperAdmin, RoleAdmin, RoleEmployee}
	for _, p := range paths {
		allowed := AllowedRoles(p)
		for _, r := range roles {
			want := false
			for _, a := range allowed {
				if a == r {
					want = true
				}
			}
			assert.Equal(t, want, IsAuthorized(r, p), "role %s path %s", r, p)
		}
	}
}

func TestIsAuthorizedUnregisteredDeniedToEveryRole(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleEmployee} {
		assert.False(t, IsAuthorized(r, "/totally/unknown"))
	}
}

func TestDefaultLandingRoute(t *testing.T) {
	assert.Equal(t, PathDashboard, DefaultLandingRoute(RoleSuperAdmin))
	assert.Equal(t, PathCars, DefaultLandingRoute(RoleAdmin))
	assert.Equal(t, PathCars, DefaultLandingRoute(RoleEmployee))
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"super-admin": RoleSuperAdmin,
		"Admin":       RoleAdmin,
		" employee ":  RoleEmployee,
	}
	for raw, want := range cases {
		got, ok := ParseRole(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}
	_, ok := ParseRole("business")
	assert.False(t, ok)
}
