package clients

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (Client, error)
	Create(ctx context.Context, client Client) (Client, error)
	Update(ctx context.Context, id string, client Client) (Client, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]Client
	ordered []string
}

// NewRepository returns the seeded in-memory client store.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]Client)}
	now := time.Now().UTC()
	seeds := []Client{
		{FirstName: "Maria", LastName: "Gonzalez", Email: "maria.gonzalez@example.com", Phone: "+1 512 555 0201", LicenseNumber: "TX-DL-448210"},
		{FirstName: "James", LastName: "Carter", Email: "james.carter@example.com", Phone: "+1 305 555 0202", LicenseNumber: "FL-DL-903417"},
		{FirstName: "Elena", LastName: "Petrova", Email: "elena.petrova@example.com", Phone: "+1 720 555 0203", LicenseNumber: "CO-DL-117754"},
		{FirstName: "David", LastName: "Kim", Email: "david.kim@example.com", Phone: "+1 512 555 0204", LicenseNumber: "TX-DL-553019"},
		{FirstName: "Sophie", LastName: "Martin", Email: "sophie.martin@example.com", Phone: "+1 305 555 0205", LicenseNumber: "FL-DL-221563"},
		{FirstName: "Ahmed", LastName: "Hassan", Email: "ahmed.hassan@example.com", Phone: "+1 720 555 0206", LicenseNumber: "CO-DL-876102"},
	}
	businesses := []string{"business-001", "business-002", "business-003"}
	for i, c := range seeds {
		c.ID = uuid.NewString()
		c.ScopeOwnership = authz.ScopeOwnership{BusinessID: businesses[i%len(businesses)]}
		c.CreatedAt = now
		c.UpdatedAt = now
		r.byID[c.ID] = c
		r.ordered = append(r.ordered, c.ID)
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Client, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.byID[id]
	if !ok {
		return Client{}, shared.ErrNotFound
	}
	return client, nil
}

func (r *repository) Create(ctx context.Context, client Client) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	r.byID[client.ID] = client
	r.ordered = append(r.ordered, client.ID)
	return client, nil
}

func (r *repository) Update(ctx context.Context, id string, client Client) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return Client{}, shared.ErrNotFound
	}
	current.FirstName = client.FirstName
	current.LastName = client.LastName
	current.Email = client.Email
	current.Phone = client.Phone
	current.LicenseNumber = client.LicenseNumber
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
