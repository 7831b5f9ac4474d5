package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

func TestPermissionsAllows(t *testing.T) {
	perms := domain.Permissions{
		"sales":    map[string]any{"process": true, "refund": false},
		"products": map[string]any{"view": true},
	}

	assert.True(t, perms.Allows("sales.process"))
	assert.False(t, perms.Allows("sales.refund"))
	assert.False(t, perms.Allows("sales.reports"), "missing node denies")
	assert.False(t, perms.Allows("shifts.open"), "missing module denies")
	assert.False(t, perms.Allows("sales"), "non-boolean node denies")
}

func TestPermissionsAllows_FullAccess(t *testing.T) {
	perms := domain.Permissions{"full_access": true}
	assert.True(t, perms.Allows("sales.refund"))
	assert.True(t, perms.Allows("anything.at.all"))
}

func TestPermissionsAllows_NilDenies(t *testing.T) {
	var perms domain.Permissions
	assert.False(t, perms.Allows("sales.process"))
}

func TestDefaultPermissions(t *testing.T) {
	assert.True(t, domain.DefaultPermissions(domain.RoleAdmin).Allows("sales.refund"))

	manager := domain.DefaultPermissions(domain.RoleManager)
	assert.True(t, manager.Allows("sales.refund"))
	assert.True(t, manager.Allows("products.adjust_stock"))

	cashier := domain.DefaultPermissions(domain.RoleCashier)
	assert.True(t, cashier.Allows("sales.process"))
	assert.False(t, cashier.Allows("sales.refund"))
	assert.False(t, cashier.Allows("products.adjust_stock"))

	stock := domain.DefaultPermissions(domain.RoleStock)
	assert.False(t, stock.Allows("sales.process"))
	assert.True(t, stock.Allows("products.manage"))
}

func TestEmployeeFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", domain.Employee{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", domain.Employee{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", domain.Employee{LastName: "Lovelace"}.FullName())
}
