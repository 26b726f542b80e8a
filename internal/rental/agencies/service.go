package agencies

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

// Service applies the visibility rules on top of the agency store. The
// agency screen is SuperAdmin-only by route, but the filter still runs so
// a future shared screen cannot leak tenants.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, actor *authz.Actor, filters rentalshared.ListFilters) ([]Agency, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	visible := authz.VisibleRecords(all, actor)
	matched := make([]Agency, 0, len(visible))
	for _, a := range visible {
		if filters.Matches(a.Name, a.City, a.Email) {
			matched = append(matched, a)
		}
	}
	if filters.SortBy == "name" {
		sort.SliceStable(matched, func(i, j int) bool {
			if filters.Descending() {
				return strings.ToLower(matched[i].Name) > strings.ToLower(matched[j].Name)
			}
			return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
		})
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

func (s *Service) Get(ctx context.Context, id string) (Agency, error) {
	if id == "" {
		return Agency{}, fmt.Errorf("%w: missing agency ID", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *authz.Actor, agency Agency) (Agency, error) {
	if strings.TrimSpace(agency.Name) == "" {
		return Agency{}, fmt.Errorf("%w: agency name required", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, agency)
}

func (s *Service) Update(ctx context.Context, actor *authz.Actor, id string, agency Agency) (Agency, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Agency{}, err
	}
	if !authz.CanModify(current, actor) {
		return Agency{}, shared.ErrForbidden
	}
	if strings.TrimSpace(agency.Name) == "" {
		return Agency{}, fmt.Errorf("%w: agency name required", shared.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, agency)
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
