package cars

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// Status values a car moves through.
const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
)

// Car is one fleet vehicle, owned by the agency that listed it.
type Car struct {
	ID string `json:"id"`
	authz.ScopeOwnership
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Plate     string    `json:"plate"`
	DailyRate float64   `json:"daily_rate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is a known car status.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance:
		return true
	}
	return false
}
