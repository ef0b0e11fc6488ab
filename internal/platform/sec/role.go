// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including account administration
	RoleAdmin UserRole = "ADMIN"

	// Manages the member registry and consults parish statistics
	RoleResponsable UserRole = "RESPONSABLE"

	// Default role for standard registered accounts, read-only access
	RoleUtilisateur UserRole = "UTILISATEUR"
)

// IsValid reports whether the role is one of the three known levels.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleResponsable, RoleUtilisateur:
		return true
	default:
		return false
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleResponsable:
		return 20
	case RoleUtilisateur:
		return 10
	default:
		return 0
	}
}

// # Screen Permissions
//
// Each console screen declares its own allow-list instead of deriving it from
// the hierarchy, so that tightening one screen never loosens another.

// CanManageAdherents reports whether the role may create, update or delete
// registry members.
func (r UserRole) CanManageAdherents() bool {
	return r == RoleAdmin || r == RoleResponsable
}

// CanManageGroupes reports whether the role may administer groups and their
// membership rosters.
func (r UserRole) CanManageGroupes() bool {
	return r == RoleAdmin
}

// CanViewStats reports whether the role may consult the statistics screen.
func (r UserRole) CanViewStats() bool {
	return r == RoleAdmin || r == RoleResponsable
}

// CanManageUtilisateurs reports whether the role may administer accounts.
func (r UserRole) CanManageUtilisateurs() bool {
	return r == RoleAdmin
}
