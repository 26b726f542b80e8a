package clients

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// Client is a renter registered with one agency.
type Client struct {
	ID string `json:"id"`
	authz.ScopeOwnership
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
