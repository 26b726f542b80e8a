package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scopedItem struct {
	ID int
	ScopeOwnership
}

func item(id int, businessID, userID string) scopedItem {
	return scopedItem{ID: id, ScopeOwnership: ScopeOwnership{BusinessID: businessID, UserID: userID}}
}

func TestVisibleRecordsSuperAdminIdentity(t *testing.T) {
	records := []scopedItem{item(1, "b1", ""), item(2, "b2", ""), item(3, "", "u9")}
	actor := &Actor{ID: "1", Role: RoleSuperAdmin}

	got := VisibleRecords(records, actor)
	require.Len(t, got, 3)
	assert.Equal(t, records, got)
}

func TestVisibleRecordsEmployeeScoping(t *testing.T) {
	records := []scopedItem{item(1, "b1", ""), item(2, "b2", "")}
	actor := &Actor{ID: "7", Role: RoleEmployee, BusinessID: "b1"}

	got := VisibleRecords(records, actor)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	assert.False(t, CanModify(records[1], actor))
	assert.True(t, CanModify(records[0], actor))
}

func TestVisibleRecordsOwnUserIDMatches(t *testing.T) {
	records := []scopedItem{item(1, "b2", "u7"), item(2, "b2", "u8")}
	actor := &Actor{ID: "u7", Role: RoleAdmin, BusinessID: "b1"}

	got := VisibleRecords(records, actor)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestVisibleRecordsPreservesOrder(t *testing.T) {
	records := []scopedItem{item(5, "b1", ""), item(2, "b2", ""), item(9, "b1", ""), item(1, "b1", "")}
	actor := &Actor{ID: "7", Role: RoleAdmin, BusinessID: "b1"}

	got := VisibleRecords(records, actor)
	require.Len(t, got, 3)
	assert.Equal(t, []int{5, 9, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestVisibleRecordsIdempotent(t *testing.T) {
	records := []scopedItem{item(1, "b1", ""), item(2, "b2", ""), item(3, "b1", "")}
	actor := &Actor{ID: "7", Role: RoleEmployee, BusinessID: "b1"}

	once := VisibleRecords(records, actor)
	twice := VisibleRecords(once, actor)
	assert.Equal(t, once, twice)
}

func TestVisibleRecordsMisconfiguredActorSeesNothing(t *testing.T) {
	records := []scopedItem{item(1, "b1", ""), item(2, "", "")}
	actor := &Actor{ID: "7", Role: RoleAdmin}

	assert.Empty(t, VisibleRecords(records, actor))
	assert.False(t, CanModify(records[0], actor))
	// An unscoped record must not match the empty business id either.
	assert.False(t, CanModify(records[1], actor))
}

func TestVisibleRecordsNilActor(t *testing.T) {
	records := []scopedItem{item(1, "b1", "")}
	assert.Empty(t, VisibleRecords(records, nil))
	assert.False(t, CanModify(records[0], nil))
}

func TestCanModifySuperAdmin(t *testing.T) {
	actor := &Actor{ID: "1", Role: RoleSuperAdmin}
	assert.True(t, CanModify(item(1, "b2", "u9"), actor))
	assert.True(t, CanModify(item(2, "", ""), actor))
}

func TestVisibleRecordsSoundAndComplete(t *testing.T) {
	records := []scopedItem{
		item(1, "b1", ""), item(2, "b2", ""), item(3, "b1", "u7"),
		item(4, "", "u7"), item(5, "", "u8"), item(6, "", ""),
	}
	actor := &Actor{ID: "u7", Role: RoleEmployee, BusinessID: "b1"}

	visible := VisibleRecords(records, actor)
	seen := make(map[int]bool, len(visible))
	for _, rec := range visible {
		seen[rec.ID] = true
		owned := rec.BusinessID == actor.BusinessID || (rec.UserID != "" && rec.UserID == actor.ID)
		assert.True(t, owned, "record %d leaked", rec.ID)
	}
	for _, rec := range records {
		owned := rec.BusinessID == actor.BusinessID || (rec.UserID != "" && rec.UserID == actor.ID)
		if owned {
			assert.True(t, seen[rec.ID], "record %d missing", rec.ID)
		}
	}
}
