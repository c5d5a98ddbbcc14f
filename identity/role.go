package identity

import (
	"fmt"
	"strings"
)

// Role represents a CRM user role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Roles returns all supported roles
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleViewer}
}

// Valid returns true if role is one of supported roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleViewer:
		return true
	}
	return false
}

// CanApprove returns true if role is allowed to approve generated messages
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageUsers returns true if role is allowed to manage other users
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// ParseRole parses case-insensitive role name
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", fmt.Errorf("unsupported role: %q", value)
	}
	return role, nil
}
