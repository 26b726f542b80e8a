package transactions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Transaction, error)
	Get(ctx context.Context, id string) (Transaction, error)
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]Transaction
	ordered []string
}

// NewRepository returns the seeded in-memory transaction ledger.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]Transaction)}
	now := time.Now().UTC()
	seeds := []Transaction{
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"}, Amount: 180, Type: TypePayment, Method: "card", Reference: "ch_1001"},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"}, Amount: 144, Type: TypePayment, Method: "card", Reference: "ch_1002"},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"}, Amount: 480, Type: TypePayment, Method: "bank_transfer", Reference: "tr_2001"},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"}, Amount: 480, Type: TypeRefund, Method: "bank_transfer", Reference: "rf_2001"},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-003"}, Amount: 64, Type: TypePayment, Method: "cash", Reference: "cs_3001"},
	}
	for i, tx := range seeds {
		tx.ID = uuid.NewString()
		tx.BookingID = uuid.NewString()
		tx.CreatedAt = now.Add(-time.Duration(len(seeds)-i) * 24 * time.Hour)
		r.byID[tx.ID] = tx
		r.ordered = append(r.ordered, tx.ID)
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Transaction, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.byID[id]
	if !ok {
		return Transaction{}, shared.ErrNotFound
	}
	return tx, nil
}
