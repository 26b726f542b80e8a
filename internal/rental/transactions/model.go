package transactions

import (
	"time"

	"github.com/fleetdesk/fleetdesk/internal/authz"
)

// Transaction kinds.
const (
	TypePayment = "payment"
	TypeRefund  = "refund"
)

// Transaction is one ledger entry tied to a booking. The screen is
// read-only; entries come from the payment pipeline, not from operators.
type Transaction struct {
	ID string `json:"id"`
	authz.ScopeOwnership
	BookingID string    `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
