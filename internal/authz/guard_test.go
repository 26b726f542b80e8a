package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateUnauthenticatedCarriesOriginalPath(t *testing.T) {
	d := Evaluate(nil, "/cars")
	assert.Equal(t, DecisionLoginRedirect, d.Kind)
	assert.Equal(t, PathLogin, d.Target)
	assert.Equal(t, "/cars", d.From)
}

func TestEvaluateSuperAdminUserDetail(t *testing.T) {
	actor := &Actor{ID: "1", Role: RoleSuperAdmin}
	d := Evaluate(actor, "/users/42")
	assert.Equal(t, DecisionAllow, d.Kind)
}

func TestEvaluateAdminDeniedDashboard(t *testing.T) {
	actor := &Actor{ID: "4", Role: RoleAdmin, BusinessID: "business-001"}
	d := Evaluate(actor, "/dashboard")
	assert.Equal(t, DecisionDenyRedirect, d.Kind)
	assert.Equal(t, PathCars, d.Target)
}

func TestEvaluateEmployeeAllowedCars(t *testing.T) {
	actor := &Actor{ID: "2", Role: RoleEmployee, BusinessID: "business-001"}
	d := Evaluate(actor, "/cars")
	assert.Equal(t, DecisionAllow, d.Kind)
}

func TestEvaluateRootAlwaysRedirects(t *testing.T) {
	d := Evaluate(nil, "/")
	assert.Equal(t, DecisionLoginRedirect, d.Kind)

	d = Evaluate(&Actor{ID: "1", Role: RoleSuperAdmin}, "/")
	assert.Equal(t, DecisionDenyRedirect, d.Kind)
	assert.Equal(t, PathDashboard, d.Target)

	d = Evaluate(&Actor{ID: "2", Role: RoleEmployee, BusinessID: "business-001"}, "/")
	assert.Equal(t, DecisionDenyRedirect, d.Kind)
	assert.Equal(t, PathCars, d.Target)
}

func TestEvaluateUnregisteredPathDenied(t *testing.T) {
	actor := &Actor{ID: "1", Role: RoleSuperAdmin}
	d := Evaluate(actor, "/reports/weekly")
	assert.Equal(t, DecisionDenyRedirect, d.Kind)
	assert.Equal(t, PathDashboard, d.Target)
}

func TestEvaluateRecomputedPerCall(t *testing.T) {
	// The same path yields different verdicts as the acting role changes.
	path := "/dashboard"
	assert.Equal(t, DecisionAllow, Evaluate(&Actor{ID: "1", Role: RoleSuperAdmin}, path).Kind)
	assert.Equal(t, DecisionDenyRedirect, Evaluate(&Actor{ID: "2", Role: RoleEmployee, BusinessID: "b1"}, path).Kind)
	assert.Equal(t, DecisionLoginRedirect, Evaluate(nil, path).Kind)
}
