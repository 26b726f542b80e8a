// Package authz holds the role model, the route permission table and the
// record visibility rules shared by every screen handler.
package authz

import "strings"

// Role identifies an actor's authority tier.
type Role string

const (
	// RoleSuperAdmin has unrestricted access to every screen and record.
	RoleSuperAdmin Role = "super-admin"
	// RoleAdmin operates on behalf of exactly one agency.
	RoleAdmin Role = "admin"
	// RoleEmployee has the same scoping rules as RoleAdmin; the distinction
	// only matters for display and audit.
	RoleEmployee Role = "employee"
)

// ParseRole maps a stored role string onto a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// DisplayName returns the human readable label for a role.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Administrator"
	case RoleAdmin:
		return "Administrator"
	case RoleEmployee:
		return "Employee"
	}
	return "Unknown Role"
}

// Actor is the authenticated entity whose role and agency drive every
// authorization decision. Admin and Employee actors must carry a non-empty
// BusinessID; SuperAdmin's BusinessID is ignored by all filters.
type Actor struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
	BusinessID string `json:"businessId,omitempty"`
}

// DisplayName returns the actor's full name for screen headers and audit lines.
func (a Actor) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Email
	}
	return name
}

// Misconfigured reports whether a business-scoped actor is missing its
// agency assignment. Such actors are treated as having access to nothing.
func (a Actor) Misconfigured() bool {
	return a.Role != RoleSuperAdmin && a.BusinessID == ""
}
