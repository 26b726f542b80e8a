package clients

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
	"github.com/fleetdesk/fleetdesk/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, actor *authz.Actor, filters rentalshared.ListFilters) ([]Client, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	visible := authz.VisibleRecords(all, actor)
	matched := make([]Client, 0, len(visible))
	for _, c := range visible {
		if filters.BusinessID != "" && c.BusinessID != filters.BusinessID {
			continue
		}
		if filters.Matches(c.FirstName, c.LastName, c.Email, c.LicenseNumber) {
			matched = append(matched, c)
		}
	}
	if filters.SortBy == "name" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := strings.ToLower(matched[i].LastName) < strings.ToLower(matched[j].LastName)
			if filters.Descending() {
				return !less
			}
			return less
		})
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	if id == "" {
		return Client{}, fmt.Errorf("%w: missing client ID", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *authz.Actor, client Client) (Client, error) {
	if actor == nil {
		return Client{}, shared.ErrForbidden
	}
	if actor.Role != authz.RoleSuperAdmin || client.BusinessID == "" {
		client.ScopeOwnership = authz.ScopeOwnership{BusinessID: actor.BusinessID, UserID: actor.ID}
	}
	return s.repo.Create(ctx, client)
}

func (s *Service) Update(ctx context.Context, actor *authz.Actor, id string, client Client) (Client, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if !authz.CanModify(current, actor) {
		return Client{}, shared.ErrForbidden
	}
	return s.repo.Update(ctx, id, client)
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
