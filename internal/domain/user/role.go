package user

import (
	"errors"
	"strings"
)

// Role is the closed set of staff roles. Authorization sites switch over it
// exhaustively instead of comparing raw strings.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RoleFaculty    Role = "FACULTY"
	RoleClinician  Role = "CLINICIAN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ErrUnknownRole is returned when a role string does not name a known role
var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a role string to a Role, case-insensitively
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleFaculty:
		return RoleFaculty, nil
	case RoleClinician:
		return RoleClinician, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleFaculty, RoleClinician, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// String returns the canonical upper-case role name
func (r Role) String() string {
	return string(r)
}
