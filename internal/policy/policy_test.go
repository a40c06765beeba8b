package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRoute(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		role          Role
		authenticated bool
		want          Decision
	}{
		{"officer on users is redirected away", "/users", RoleOfficer, true, RedirectUnauthorized},
		{"super admin on users is allowed", "/users", RoleSuperAdmin, true, Allow},
		{"nested users path follows prefix", "/users/42", RoleDirector, true, RedirectUnauthorized},
		{"no session on users goes to login", "/users", "", false, RedirectLogin},
		{"no session on reports goes to login", "/reports", "", false, RedirectLogin},
		{"no session on sample analysis goes to login", "/sample-analysis/1", "", false, RedirectLogin},
		{"no session on dashboard goes to login", "/", "", false, RedirectLogin},
		{"minister on reports is allowed", "/reports", RoleMinister, true, Allow},
		{"general director on reports is refused", "/reports", RoleGeneralDirector, true, RedirectUnauthorized},
		{"director on sample analysis is allowed", "/sample-analysis", RoleDirector, true, Allow},
		{"minister on sample analysis is refused", "/sample-analysis", RoleMinister, true, RedirectUnauthorized},
		{"officer on licenses is allowed", "/licenses", RoleOfficer, true, Allow},
		{"segment boundary respected", "/usersettings", RoleOfficer, true, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckRoute(tt.path, tt.role, tt.authenticated))
		})
	}
}

func TestCan(t *testing.T) {
	privileged := []Role{RoleGeneralDirector, RoleDirector, RoleMinister}
	for _, r := range privileged {
		assert.True(t, Can(r, ActionLicenseChangeStatus), r)
		assert.True(t, Can(r, ActionLicenseDelete), r)
		assert.True(t, Can(r, ActionSampleDelete), r)
	}
	assert.False(t, Can(RoleOfficer, ActionLicenseChangeStatus))
	assert.False(t, Can(RoleSuperAdmin, ActionLicenseChangeStatus))

	assert.True(t, Can(RoleMinister, ActionLicenseSign))
	assert.False(t, Can(RoleDirector, ActionLicenseSign))

	assert.True(t, Can(RoleGeneralDirector, ActionSampleSign))
	assert.False(t, Can(RoleMinister, ActionSampleSign))

	assert.True(t, Can(RoleSuperAdmin, ActionUserManage))
	assert.False(t, Can(RoleMinister, ActionUserManage))

	assert.False(t, Can(RoleSuperAdmin, Action("unknown")))
}

func TestAllowedRolesKeepsDeclarationOrder(t *testing.T) {
	assert.Equal(t, []Role{RoleSuperAdmin, RoleMinister, RoleDirector}, AllowedRoles(ActionReportView))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("DIRECTOR")
	require.NoError(t, err)
	assert.Equal(t, RoleDirector, r)

	_, err = ParseRole("director")
	assert.Error(t, err)
	assert.False(t, Role("ROOT").Valid())
}

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("MINISTER")))
	assert.Equal(t, RoleMinister, r)

	assert.Error(t, r.Scan("NOPE"))
	assert.Error(t, r.Scan(42))
}
