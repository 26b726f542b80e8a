package agencies

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// Agency is one rental business tenant. Its ownership business id is its
// own id, so the scoped filter treats an agency as belonging to itself.
type Agency struct {
	ID string `json:"id"`
	authz.ScopeOwnership
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
