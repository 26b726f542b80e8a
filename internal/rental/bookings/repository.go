package bookings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	Get(ctx context.Context, id string) (Booking, error)
	Create(ctx context.Context, booking Booking) (Booking, error)
	Update(ctx context.Context, id string, booking Booking) (Booking, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]Booking
	ordered []string
}

// NewRepository returns the seeded in-memory booking store. Dates are
// anchored to the current month so the calendar screen has content.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]Booking)}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	seeds := []Booking{
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"}, StartDate: monthStart.AddDate(0, 0, 2), EndDate: monthStart.AddDate(0, 0, 6), TotalPrice: 180, Status: StatusCompleted},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-001"}, StartDate: monthStart.AddDate(0, 0, 10), EndDate: monthStart.AddDate(0, 0, 13), TotalPrice: 144, Status: StatusActive},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"}, StartDate: monthStart.AddDate(0, 0, 5), EndDate: monthStart.AddDate(0, 0, 9), TotalPrice: 480, Status: StatusConfirmed},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-002"}, StartDate: monthStart.AddDate(0, 0, 18), EndDate: monthStart.AddDate(0, 0, 21), TotalPrice: 420, Status: StatusPending},
		{ScopeOwnership: authz.ScopeOwnership{BusinessID: "business-003"}, StartDate: monthStart.AddDate(0, 0, 7), EndDate: monthStart.AddDate(0, 0, 8), TotalPrice: 64, Status: StatusCancelled},
	}
	for _, b := range seeds {
		b.ID = uuid.NewString()
		b.CarID = uuid.NewString()
		b.ClientID = uuid.NewString()
		b.CreatedAt = now
		b.UpdatedAt = now
		r.byID[b.ID] = b
		r.ordered = append(r.ordered, b.ID)
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Booking, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.byID[id]
	if !ok {
		return Booking{}, shared.ErrNotFound
	}
	return booking, nil
}

func (r *repository) Create(ctx context.Context, booking Booking) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.byID[booking.ID] = booking
	r.ordered = append(r.ordered, booking.ID)
	return booking, nil
}

func (r *repository) Update(ctx context.Context, id string, booking Booking) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return Booking{}, shared.ErrNotFound
	}
	current.CarID = booking.CarID
	current.ClientID = booking.ClientID
	current.StartDate = booking.StartDate
	current.EndDate = booking.EndDate
	current.TotalPrice = booking.TotalPrice
	current.Notes = booking.Notes
	if booking.Status != "" {
		current.Status = booking.Status
	}
	current.UpdatedAt = time.Now().UTC()
	r.byID[id] = current
	return current, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.ordered {
		if existing == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return nil
}
