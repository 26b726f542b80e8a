package users

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// User is the management view of a directory credential. Password hashes
// never leave the auth package.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          authz.Role `json:"role"`
	RoleLabel     string     `json:"role_label"`
	BusinessID    string     `json:"business_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	Misconfigured bool       `json:"misconfigured"`
	CreatedAt     time.Time  `json:"created_at"`
}
