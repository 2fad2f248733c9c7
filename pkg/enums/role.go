package enums

import "fmt"

// Role describes the authorization tier attached to an account.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER_USER"
	RoleAdmin      Role = "ADMIN_USER"
	RoleSuperAdmin Role = "SUPER_ADMIN_USER"
)

var validRoles = []Role{
	RoleCustomer,
	RoleAdmin,
	RoleSuperAdmin,
}

// IsValid reports whether the value matches the canonical role enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role grants back-office access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ParseRole converts the raw string to Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
