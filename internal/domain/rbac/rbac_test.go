package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/rbac"
)

func TestCan_TablaPorRol(t *testing.T) {
	cases := []struct {
		role entity.Role
		perm rbac.Permission
		want bool
	}{
		{entity.RoleSuperAdmin, rbac.ManageUsers, true},
		{entity.RoleOperation, rbac.ManageUsers, false},
		{entity.RoleStoreKeeper, rbac.AddItem, true},
		{entity.RoleOperation, rbac.AddItem, false},
		{entity.RoleStoreKeeper, rbac.EditItem, true},
		{entity.RoleOperation, rbac.DeleteItem, false},
		{entity.RoleOperation, rbac.CreateDispatch, true},
		{entity.RoleStoreKeeper, rbac.CreateDispatch, false},
		{entity.RoleStoreKeeper, rbac.AuthorizeDispatch, false},
		{entity.RoleStoreKeeper, rbac.ConfirmReturn, true},
		{entity.RoleStoreKeeper, rbac.ViewFinance, false},
		{entity.RoleOperation, rbac.DeleteInvoice, false},
		{entity.RoleStoreKeeper, rbac.ViewBookings, true},
		{entity.RoleStoreKeeper, rbac.CreateBooking, false},
		{entity.Role("GUEST"), rbac.ViewReports, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rbac.Can(tc.role, tc.perm), "%s %s", tc.role, tc.perm)
	}
}

func TestPermissions_SuperAdminTieneTodo(t *testing.T) {
	assert.Len(t, rbac.Permissions(entity.RoleSuperAdmin), 24)
	assert.NotContains(t, rbac.Permissions(entity.RoleStoreKeeper), rbac.ManageUsers)
}
