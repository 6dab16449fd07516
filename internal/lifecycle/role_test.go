package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleBuyer, ActionCreateOrder, true},
		{RoleBuyer, ActionCancelOrder, true},
		{RoleBuyer, ActionApproveOrder, false},
		{RoleBuyer, ActionAppendTracking, false},
		{RoleBuyer, ActionManageUsers, false},

		{RoleManager, ActionApproveOrder, true},
		{RoleManager, ActionRejectOrder, true},
		{RoleManager, ActionAppendTracking, true},
		{RoleManager, ActionManageProducts, true},
		{RoleManager, ActionCreateOrder, false},
		{RoleManager, ActionManageUsers, false},

		{RoleAdmin, ActionApproveOrder, true},
		{RoleAdmin, ActionAppendTracking, true},
		{RoleAdmin, ActionManageUsers, true},
		{RoleAdmin, ActionCreateOrder, false},

		{Role("ghost"), ActionCreateOrder, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.role.Can(tc.action),
			"%s.Can(%s)", tc.role, tc.action)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleBuyer.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestUserStatusValid(t *testing.T) {
	assert.True(t, UserPending.Valid())
	assert.True(t, UserActive.Valid())
	assert.True(t, UserSuspended.Valid())
	assert.False(t, UserStatus("banned").Valid())
}
