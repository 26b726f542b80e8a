package auth

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// Credential is one entry of the mock credential directory. Passwords are
// stored bcrypt-hashed even though the directory is a demo fixture.
type Credential struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         authz.Role
	BusinessID   string
	IsActive     bool
	CreatedAt    time.Time
}

// Actor converts the credential into the session actor it authenticates.
func (c Credential) Actor() authz.Actor {
	return authz.Actor{
		ID:         c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Role:       c.Role,
		BusinessID: c.BusinessID,
	}
}
