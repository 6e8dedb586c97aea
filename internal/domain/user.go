package domain

import "fmt"

// Role is the closed set of personas the presentation layer can act as.
type Role string

const (
	RoleDriver      Role = "Driver"
	RoleOperator    Role = "Operator"
	RoleSiteManager Role = "Site Manager"
	RoleAdminLite   Role = "Admin-lite"
	RoleTechnician  Role = "Technician"
	RoleGuest       Role = "Guest"
)

// Roles lists every role in display order.
var Roles = []Role{RoleDriver, RoleOperator, RoleSiteManager, RoleAdminLite, RoleTechnician, RoleGuest}

// ParseRole converts a raw role string into a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q: %w", s, ErrValidation)
}

// HasOperationalAccess reports whether the role may use the operations views
// (arrivals board, bay reassignment, DLM, tickets).
func HasOperationalAccess(r Role) bool {
	switch r {
	case RoleOperator, RoleSiteManager, RoleAdminLite, RoleTechnician:
		return true
	}
	return false
}

// CanAdministerSuspensions reports whether the role may clear a user's suspension.
func CanAdministerSuspensions(r Role) bool {
	return r == RoleSiteManager || r == RoleAdminLite
}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       Role   `json:"role"`
	IsHost     bool   `json:"is_host"` // may sponsor guests; raises the weekly reservation limit
}
