package bookings

import (
	"context"
	"fmt"
	"sort"
	"time"

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

func (s *Service) List(ctx context.Context, actor *authz.Actor, filters rentalshared.ListFilters) ([]Booking, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	visible := authz.VisibleRecords(all, actor)
	matched := make([]Booking, 0, len(visible))
	for _, b := range visible {
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		if filters.BusinessID != "" && b.BusinessID != filters.BusinessID {
			continue
		}
		if filters.Matches(b.CarID, b.ClientID, b.Notes) {
			matched = append(matched, b)
		}
	}
	if filters.SortBy == "start_date" {
		sort.SliceStable(matched, func(i, j int) bool {
			if filters.Descending() {
				return matched[i].StartDate.After(matched[j].StartDate)
			}
			return matched[i].StartDate.Before(matched[j].StartDate)
		})
	}
	page := rentalshared.Page(matched, filters.Page, filters.Limit)
	return page, shared.NewPagination(filters.Page, filters.Limit, len(matched)), nil
}

// Between returns the actor's visible bookings overlapping the [from, to)
// window, ordered by start date. The calendar feed is built on this.
func (s *Service) Between(ctx context.Context, actor *authz.Actor, from, to time.Time) ([]Booking, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := authz.VisibleRecords(all, actor)
	out := make([]Booking, 0, len(visible))
	for _, b := range visible {
		if b.StartDate.Before(to) && b.EndDate.After(from) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

// All returns every booking visible to the actor, unpaginated.
func (s *Service) All(ctx context.Context, actor *authz.Actor) ([]Booking, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return authz.VisibleRecords(all, actor), nil
}

func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	if id == "" {
		return Booking{}, fmt.Errorf("%w: missing booking ID", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *authz.Actor, booking Booking) (Booking, error) {
	if actor == nil {
		return Booking{}, shared.ErrForbidden
	}
	if !booking.EndDate.After(booking.StartDate) {
		return Booking{}, fmt.Errorf("%w: booking end date must be after start date", shared.ErrInvalidInput)
	}
	if actor.Role != authz.RoleSuperAdmin || booking.BusinessID == "" {
		booking.ScopeOwnership = authz.ScopeOwnership{BusinessID: actor.BusinessID, UserID: actor.ID}
	}
	booking.Status = StatusPending
	return s.repo.Create(ctx, booking)
}

func (s *Service) Update(ctx context.Context, actor *authz.Actor, id string, booking Booking) (Booking, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !authz.CanModify(current, actor) {
		return Booking{}, shared.ErrForbidden
	}
	if !booking.EndDate.After(booking.StartDate) {
		return Booking{}, fmt.Errorf("%w: booking end date must be after start date", shared.ErrInvalidInput)
	}
	booking.Status = ""
	return s.repo.Update(ctx, id, booking)
}

// ChangeStatus advances a booking through its lifecycle, rejecting moves the
// state machine does not allow.
func (s *Service) ChangeStatus(ctx context.Context, actor *authz.Actor, id, status string) (Booking, error) {
	if !ValidStatus(status) {
		return Booking{}, fmt.Errorf("%w: unknown booking status", shared.ErrInvalidInput)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !authz.CanModify(current, actor) {
		return Booking{}, shared.ErrForbidden
	}
	if !CanTransition(current.Status, status) {
		return Booking{}, fmt.Errorf("%w: cannot move booking from %s to %s", shared.ErrInvalidInput, current.Status, status)
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
