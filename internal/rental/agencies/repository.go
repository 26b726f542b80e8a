package agencies

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Agency, error)
	Get(ctx context.Context, id string) (Agency, error)
	Create(ctx context.Context, agency Agency) (Agency, error)
	Update(ctx context.Context, id string, agency Agency) (Agency, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]Agency
	ordered []string
}

// NewRepository returns the seeded in-memory agency store.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]Agency)}
	now := time.Now().UTC()
	for _, a := range []Agency{
		{ID: "business-001", Name: "Premium Car Rentals", City: "Austin", Phone: "+1 512 555 0101", Email: "contact@premiumcars.example"},
		{ID: "business-002", Name: "Luxury Auto Rentals", City: "Miami", Phone: "+1 305 555 0102", Email: "contact@luxuryauto.example"},
		{ID: "business-003", Name: "Economy Car Services", City: "Denver", Phone: "+1 720 555 0103", Email: "contact@economycars.example"},
	} {
		a.ScopeOwnership = authz.ScopeOwnership{BusinessID: a.ID}
		a.CreatedAt = now
		a.UpdatedAt = now
		r.byID[a.ID] = a
		r.ordered = append(r.ordered, a.ID)
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]Agency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Agency, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Agency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agency, ok := r.byID[id]
	if !ok {
		return Agency{}, shared.ErrNotFound
	}
	return agency, nil
}

func (r *repository) Create(ctx context.Context, agency Agency) (Agency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if agency.ID == "" {
		agency.ID = "business-" + uuid.NewString()[:8]
	}
	agency.ScopeOwnership = authz.ScopeOwnership{BusinessID: agency.ID}
	now := time.Now().UTC()
	agency.CreatedAt = now
	agency.UpdatedAt = now
	r.byID[agency.ID] = agency
	r.ordered = append(r.ordered, agency.ID)
	return agency, nil
}

func (r *repository) Update(ctx context.Context, id string, agency Agency) (Agency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return Agency{}, shared.ErrNotFound
	}
	current.Name = agency.Name
	current.City = agency.City
	current.Phone = agency.Phone
	current.Email = agency.Email
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
