package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/rental/cars"
	"github.com/fleetdesk/fleetdesk/internal/rental/transactions"
)

// Summary is the aggregate snapshot behind the dashboard screen.
type Summary struct {
	CarsTotal       int                `json:"cars_total"`
	CarsByStatus    map[string]int     `json:"cars_by_status"`
	BookingsTotal   int                `json:"bookings_total"`
	BookingsByState map[string]int     `json:"bookings_by_status"`
	Revenue         float64            `json:"revenue"`
	Refunds         float64            `json:"refunds"`
	RevenueByAgency map[string]float64 `json:"revenue_by_agency"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// Service aggregates the per-screen stores into one snapshot. Building the
// snapshot walks every store, so concurrent requests collapse onto a single
// computation and the result is reused for a short window.
type Service struct {
	cars         CarLister
	bookings     BookingLister
	transactions TransactionLister

	group singleflight.Group

	mu       sync.Mutex
	cached   Summary
	cachedAt time.Time
	ttl      time.Duration
}

// CarLister is the slice of the fleet service the dashboard needs.
type CarLister interface {
	All(ctx context.Context, actor *authz.Actor) ([]cars.Car, error)
}

// BookingLister is the slice of the booking service the dashboard needs.
type BookingLister interface {
	All(ctx context.Context, actor *authz.Actor) ([]bookings.Booking, error)
}

// TransactionLister is the slice of the ledger the dashboard needs.
type TransactionLister interface {
	All(ctx context.Context, actor *authz.Actor) ([]transactions.Transaction, error)
}

func NewService(cars CarLister, bookings BookingLister, transactions TransactionLister) *Service {
	return &Service{cars: cars, bookings: bookings, transactions: transactions, ttl: 30 * time.Second}
}

// Summary returns the current snapshot. The dashboard route is
// SuperAdmin-only, so the actor always sees the whole dataset; the actor is
// still passed through so the stores apply their own visibility rules.
func (s *Service) Summary(ctx context.Context, actor *authz.Actor) (Summary, error) {
	s.mu.Lock()
	if time.Since(s.cachedAt) < s.ttl {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	result, err, _ := s.group.Do("summary", func() (any, error) {
		summary, err := s.build(ctx, actor)
		if err != nil {
			return Summary{}, err
		}
		s.mu.Lock()
		s.cached = summary
		s.cachedAt = time.Now()
		s.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		return Summary{}, err
	}
	return result.(Summary), nil
}

func (s *Service) build(ctx context.Context, actor *authz.Actor) (Summary, error) {
	summary := Summary{
		CarsByStatus:    make(map[string]int),
		BookingsByState: make(map[string]int),
		RevenueByAgency: make(map[string]float64),
		GeneratedAt:     time.Now().UTC(),
	}

	fleet, err := s.cars.All(ctx, actor)
	if err != nil {
		return Summary{}, err
	}
	summary.CarsTotal = len(fleet)
	for _, c := range fleet {
		summary.CarsByStatus[c.Status]++
	}

	allBookings, err := s.bookings.All(ctx, actor)
	if err != nil {
		return Summary{}, err
	}
	summary.BookingsTotal = len(allBookings)
	for _, b := range allBookings {
		summary.BookingsByState[b.Status]++
	}

	ledger, err := s.transactions.All(ctx, actor)
	if err != nil {
		return Summary{}, err
	}
	for _, tx := range ledger {
		switch tx.Type {
		case transactions.TypeRefund:
			summary.Refunds += tx.Amount
			summary.RevenueByAgency[tx.BusinessID] -= tx.Amount
		default:
			summary.Revenue += tx.Amount
			summary.RevenueByAgency[tx.BusinessID] += tx.Amount
		}
	}
	return summary, nil
}
