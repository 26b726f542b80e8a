package faqs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]FAQ, error)
	Get(ctx context.Context, id string) (FAQ, error)
	Create(ctx context.Context, faq FAQ) (FAQ, error)
	Update(ctx context.Context, id string, faq FAQ) (FAQ, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu   sync.RWMutex
	byID map[string]FAQ
}

// NewRepository returns the seeded in-memory FAQ store.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]FAQ)}
	now := time.Now().UTC()
	seeds := []FAQ{
		{Question: "What documents do I need to rent a car?", Answer: "A valid driver's license and a credit card in the renter's name.", Category: "booking", Position: 1, Published: true},
		{Question: "Can I cancel a booking?", Answer: "Bookings can be cancelled free of charge up to 24 hours before pickup.", Category: "booking", Position: 2, Published: true},
		{Question: "Is insurance included?", Answer: "Basic collision coverage is included; full coverage is available at checkout.", Category: "insurance", Position: 3, Published: true},
		{Question: "Do you offer one-way rentals?", Answer: "One-way rentals are available between select cities for an extra fee.", Category: "booking", Position: 4, Published: false},
	}
	for _, f := range seeds {
		f.ID = uuid.NewString()
		f.CreatedAt = now
		f.UpdatedAt = now
		r.byID[f.ID] = f
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FAQ, 0, len(r.byID))
	for _, f := range r.byID {
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[id]
	if !ok {
		return FAQ{}, shared.ErrNotFound
	}
	return f, nil
}

func (r *repository) Create(ctx context.Context, faq FAQ) (FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	faq.CreatedAt = now
	faq.UpdatedAt = now
	if faq.Position == 0 {
		faq.Position = len(r.byID) + 1
	}
	r.byID[faq.ID] = faq
	return faq, nil
}

func (r *repository) Update(ctx context.Context, id string, faq FAQ) (FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return FAQ{}, shared.ErrNotFound
	}
	current.Question = faq.Question
	current.Answer = faq.Answer
	current.Category = faq.Category
	current.Published = faq.Published
	if faq.Position != 0 {
		current.Position = faq.Position
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
	return nil
}
