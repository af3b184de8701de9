package domain

import "slices"

// Role is a management API permission carried in the token's roles claim.
type Role string

const (
	// RoleAdmin may trigger credential backups.
	RoleAdmin Role = "admin"

	// RoleUser reads the tenant's message log and edits its settings.
	RoleUser Role = "user"
)

var ValidRoles = []Role{RoleAdmin, RoleUser}

func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// Satisfies reports whether holding r grants required. Admin grants every role.
func (r Role) Satisfies(required Role) bool {
	return r == required || r == RoleAdmin
}
