package transactions

import (
	"context"
	"fmt"
	"sort"

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

func (s *Service) List(ctx context.Context, actor *authz.Actor, filters rentalshared.ListFilters) ([]Transaction, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	visible := authz.VisibleRecords(all, actor)
	matched := make([]Transaction, 0, len(visible))
	for _, tx := range visible {
		if filters.Status != "" && tx.Type != filters.Status {
			continue
		}
		if filters.BusinessID != "" && tx.BusinessID != filters.BusinessID {
			continue
		}
		if filters.Matches(tx.Reference, tx.Method, tx.BookingID) {
			matched = append(matched, tx)
		}
	}
	if filters.SortBy == "amount" {
		sort.SliceStable(matched, func(i, j int) bool {
			if filters.Descending() {
				return matched[i].Amount > matched[j].Amount
			}
			return matched[i].Amount < matched[j].Amount
		})
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

// All returns every ledger entry visible to the actor, unpaginated.
func (s *Service) All(ctx context.Context, actor *authz.Actor) ([]Transaction, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return authz.VisibleRecords(all, actor), nil
}

func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	if id == "" {
		return Transaction{}, fmt.Errorf("%w: missing transaction ID", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}
