package transactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/fleetdesk/internal/authz"
	rentalshared "github.com/fleetdesk/fleetdesk/internal/rental/shared"
)

func TestListSuperAdminSeesFullLedger(t *testing.T) {
	svc := NewService(NewRepository())
	super := &authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}

	records, pagination, err := svc.List(context.Background(), super, rentalshared.ListFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.Equal(t, 5, pagination.Total)
}

func TestSeedsCarryBusinessScope(t *testing.T) {
	svc := NewService(NewRepository())
	admin := &authz.Actor{ID: "4", Role: authz.RoleAdmin, BusinessID: "business-002"}

	records, _, err := svc.List(context.Background(), admin, rentalshared.ListFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, tx := range records {
		require.Equal(t, "business-002", tx.BusinessID)
	}
}

func TestListFiltersByType(t *testing.T) {
	svc := NewService(NewRepository())
	super := &authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}

	records, _, err := svc.List(context.Background(), super, rentalshared.ListFilters{Page: 1, Limit: 10, Status: TypeRefund})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 480.0, records[0].Amount)
	require.Equal(t, "business-002", records[0].BusinessID)
}

func TestListSortsByAmount(t *testing.T) {
	svc := NewService(NewRepository())
	super := &authz.Actor{ID: "1", Role: authz.RoleSuperAdmin}

	records, _, err := svc.List(context.Background(), super, rentalshared.ListFilters{Page: 1, Limit: 10, SortBy: "amount", SortDir: rentalshared.SortDesc})
	require.NoError(t, err)
	require.Equal(t, 480.0, records[0].Amount)
	require.Equal(t, 64.0, records[len(records)-1].Amount)
}
