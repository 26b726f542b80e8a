package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/rental/cars"
	"github.com/fleetdesk/fleetdesk/internal/rental/transactions"
)

func newTestService() *Service {
	return NewService(
		cars.NewService(cars.NewRepository()),
		bookings.NewService(bookings.NewRepository()),
		transactions.NewService(transactions.NewRepository()),
	)
}

func TestSummaryCounts(t *testing.T) {
	svc := newTestService()
	super := &authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}

	summary, err := svc.Summary(context.Background(), super)
	require.NoError(t, err)
	require.Equal(t, 9, summary.CarsTotal)
	require.Equal(t, 5, summary.BookingsTotal)
	require.Equal(t, float64(180+144+480+64), summary.Revenue)
	require.Equal(t, float64(480), summary.Refunds)
	require.Equal(t, float64(0), summary.RevenueByAgency["business-002"])

	total := 0
	for _, n := range summary.CarsByStatus {
		total += n
	}
	require.Equal(t, summary.CarsTotal, total)
}

func TestSummaryIsCached(t *testing.T) {
	svc := newTestService()
	super := &authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}

	first, err := svc.Summary(context.Background(), super)
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), super)
	require.NoError(t, err)
	require.Equal(t, first.GeneratedAt, second.GeneratedAt)
}
