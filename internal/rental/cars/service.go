package cars

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Service applies the visibility rules on top of the fleet store. Listing is
// scoped to what the actor may see; mutations additionally require ownership
// of the individual record.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, actor *authz.Actor, filters rentalshared.ListFilters) ([]Car, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	visible := authz.VisibleRecords(all, actor)
	matched := make([]Car, 0, len(visible))
	for _, c := range visible {
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		if filters.BusinessID != "" && c.BusinessID != filters.BusinessID {
			continue
		}
		if filters.Matches(c.Make, c.Model, c.Plate) {
			matched = append(matched, c)
		}
	}
	switch filters.SortBy {
	case "make":
		sort.SliceStable(matched, func(i, j int) bool {
			less := strings.ToLower(matched[i].Make) < strings.ToLower(matched[j].Make)
			if filters.Descending() {
				return !less
			}
			return less
		})
	case "daily_rate":
		sort.SliceStable(matched, func(i, j int) bool {
			if filters.Descending() {
				return matched[i].DailyRate > matched[j].DailyRate
			}
			return matched[i].DailyRate < matched[j].DailyRate
		})
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

// All returns every car visible to the actor, unpaginated.
func (s *Service) All(ctx context.Context, actor *authz.Actor) ([]Car, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return authz.VisibleRecords(all, actor), nil
}

func (s *Service) Get(ctx context.Context, id string) (Car, error) {
	if id == "" {
		return Car{}, fmt.Errorf("%w: missing car ID", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create stamps the new record with the acting user's scope so it shows up
// for everyone in the same agency. SuperAdmins may list a car for any agency
// by passing an explicit business ID.
func (s *Service) Create(ctx context.Context, actor *authz.Actor, car Car) (Car, error) {
	if actor == nil {
		return Car{}, shared.ErrForbidden
	}
	if actor.Role != authz.RoleSuperAdmin || car.BusinessID == "" {
		car.ScopeOwnership = authz.ScopeOwnership{BusinessID: actor.BusinessID, UserID: actor.ID}
	}
	if car.Status == "" {
		car.Status = StatusAvailable
	}
	if !ValidStatus(car.Status) {
		return Car{}, fmt.Errorf("%w: unknown car status", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, car)
}

func (s *Service) Update(ctx context.Context, actor *authz.Actor, id string, car Car) (Car, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Car{}, err
	}
	if !authz.CanModify(current, actor) {
		return Car{}, shared.ErrForbidden
	}
	if car.Status != "" && !ValidStatus(car.Status) {
		return Car{}, fmt.Errorf("%w: unknown car status", shared.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, car)
}

// ChangeStatus flips a single car between available, rented and maintenance.
func (s *Service) ChangeStatus(ctx context.Context, actor *authz.Actor, id, status string) (Car, error) {
	if !ValidStatus(status) {
		return Car{}, fmt.Errorf("%w: unknown car status", shared.ErrInvalidInput)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Car{}, err
	}
	if !authz.CanModify(current, actor) {
		return Car{}, shared.ErrForbidden
	}
	current.Status = status
	return s.repo.Update(ctx, id, current)
}

func (s *Service) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModify(current, actor) {
		return shared.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
