package cars

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Car, error)
	Get(ctx context.Context, id string) (Car, error)
	Create(ctx context.Context, car Car) (Car, error)
	Update(ctx context.Context, id string, car Car) (Car, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu      sync.RWMutex
	byID    map[string]Car
	ordered []string
}

type seedCar struct {
	make, model, plate string
	year               int
	rate               float64
	status             string
}

// Demo fleet, distributed round-robin across the seeded agencies.
var seedCars = []seedCar{
	{"Toyota", "Corolla", "TX-4821", 2022, 45, StatusAvailable},
	{"BMW", "530i", "FL-9034", 2023, 120, StatusRented},
	{"Kia", "Rio", "CO-1177", 2021, 32, StatusAvailable},
	{"Honda", "Civic", "TX-5530", 2023, 48, StatusAvailable},
	{"Mercedes", "E-Class", "FL-2215", 2024, 140, StatusMaintenance},
	{"Hyundai", "Accent", "CO-8761", 2020, 30, StatusAvailable},
	{"Ford", "Escape", "TX-3344", 2022, 62, StatusRented},
	{"Audi", "A6", "FL-7812", 2023, 130, StatusAvailable},
	{"Nissan", "Versa", "CO-5590", 2021, 28, StatusAvailable},
}

var seedBusinessIDs = []string{"business-001", "business-002", "business-003"}

// NewRepository returns the seeded in-memory fleet store.
func NewRepository() Repository {
	r := &repository{byID: make(map[string]Car)}
	now := time.Now().UTC()
	for i, s := range seedCars {
		car := Car{
			ID:             uuid.NewString(),
			ScopeOwnership: authz.ScopeOwnership{BusinessID: seedBusinessIDs[i%len(seedBusinessIDs)]},
			Make:           s.make,
			Model:          s.model,
			Year:           s.year,
			Plate:          s.plate,
			DailyRate:      s.rate,
			Status:         s.status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		r.byID[car.ID] = car
		r.ordered = append(r.ordered, car.ID)
	}
	return r
}

func (r *repository) List(ctx context.Context) ([]Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Car, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	car, ok := r.byID[id]
	if !ok {
		return Car{}, shared.ErrNotFound
	}
	return car, nil
}

func (r *repository) Create(ctx context.Context, car Car) (Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	r.byID[car.ID] = car
	r.ordered = append(r.ordered, car.ID)
	return car, nil
}

func (r *repository) Update(ctx context.Context, id string, car Car) (Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[id]
	if !ok {
		return Car{}, shared.ErrNotFound
	}
	current.Make = car.Make
	current.Model = car.Model
	current.Year = car.Year
	current.Plate = car.Plate
	current.DailyRate = car.DailyRate
	if car.Status != "" {
		current.Status = car.Status
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
