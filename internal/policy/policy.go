// internal/policy/policy.go
package policy

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role is the permission level attached to a user.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleMinister        Role = "MINISTER"
	RoleGeneralDirector Role = "GENERAL_DIRECTOR"
	RoleDirector        Role = "DIRECTOR"
	RoleOfficer         Role = "OFFICER"
)

var allRoles = []Role{RoleSuperAdmin, RoleMinister, RoleGeneralDirector, RoleDirector, RoleOfficer}

func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %q", string(r))
	}
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*r = ""
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Action names a privileged mutation that is re-checked inside the API
// regardless of the page guard.
type Action string

const (
	ActionLicenseChangeStatus Action = "license:change_status"
	ActionLicenseDelete       Action = "license:delete"
	ActionLicenseSign         Action = "license:sign"
	ActionSampleCreate        Action = "sample:create"
	ActionSampleUpdate        Action = "sample:update"
	ActionSampleDelete        Action = "sample:delete"
	ActionSampleSign          Action = "sample:sign"
	ActionUserManage          Action = "user:manage"
	ActionReportView          Action = "report:view"
	ActionAuditView           Action = "audit:view"
)

type roleSet map[Role]struct{}

func newRoleSet(roles ...Role) roleSet {
	s := make(roleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s roleSet) has(r Role) bool {
	_, ok := s[r]
	return ok
}

var actionPolicy = map[Action]roleSet{
	ActionLicenseChangeStatus: newRoleSet(RoleGeneralDirector, RoleDirector, RoleMinister),
	ActionLicenseDelete:       newRoleSet(RoleGeneralDirector, RoleDirector, RoleMinister),
	ActionLicenseSign:         newRoleSet(RoleMinister),
	ActionSampleCreate:        newRoleSet(RoleSuperAdmin, RoleDirector),
	ActionSampleUpdate:        newRoleSet(RoleSuperAdmin, RoleDirector),
	ActionSampleDelete:        newRoleSet(RoleGeneralDirector, RoleDirector, RoleMinister),
	ActionSampleSign:          newRoleSet(RoleGeneralDirector),
	ActionUserManage:          newRoleSet(RoleSuperAdmin),
	ActionReportView:          newRoleSet(RoleSuperAdmin, RoleDirector, RoleMinister),
	ActionAuditView:           newRoleSet(RoleSuperAdmin),
}

// Can reports whether role may perform action. Unknown actions are denied.
func Can(role Role, action Action) bool {
	allowed, ok := actionPolicy[action]
	if !ok {
		return false
	}
	return allowed.has(role)
}

// AllowedRoles lists the roles permitted for action in declaration order.
func AllowedRoles(action Action) []Role {
	allowed := actionPolicy[action]
	var out []Role
	for _, r := range allRoles {
		if allowed.has(r) {
			out = append(out, r)
		}
	}
	return out
}

type routeRule struct {
	prefix string
	roles  roleSet
}

// First matching prefix wins.
var routePolicy = []routeRule{
	{prefix: "/users", roles: newRoleSet(RoleSuperAdmin)},
	{prefix: "/reports", roles: newRoleSet(RoleSuperAdmin, RoleDirector, RoleMinister)},
	{prefix: "/sample-analysis", roles: newRoleSet(RoleSuperAdmin, RoleDirector)},
}

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// CheckRoute evaluates a page request. Unauthenticated callers are always
// sent to login; authenticated callers are checked against the first
// matching prefix, and any route without a rule is open to every role.
func CheckRoute(path string, role Role, authenticated bool) Decision {
	if !authenticated {
		return RedirectLogin
	}
	for _, rule := range routePolicy {
		if matchesPrefix(path, rule.prefix) {
			if rule.roles.has(role) {
				return Allow
			}
			return RedirectUnauthorized
		}
	}
	return Allow
}

// matchesPrefix matches whole path segments so "/usersx" does not fall under "/users".
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
