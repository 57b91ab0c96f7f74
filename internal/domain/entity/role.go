package entity

import "slices"

// Role represents the position of a store member inside its store.
type Role string

const (
	// RoleAdmin implicitly holds every permission.
	RoleAdmin Role = "admin"
	// RoleManager is a member with explicit permissions.
	RoleManager Role = "manager"
	// RoleStaff is a member with explicit permissions.
	RoleStaff Role = "staff"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// Permission is a capability string granted to a store member.
type Permission string

const (
	// PermissionAll is the sentinel granting every permission.
	PermissionAll        Permission = "all"
	PermissionProducts   Permission = "products.write"
	PermissionWarranties Permission = "warranties.write"
	PermissionClaims     Permission = "claims.write"
	PermissionCustomers  Permission = "customers.write"
)

// String returns the string representation of the Permission.
func (p Permission) String() string {
	return string(p)
}

// Permissions is the permission set stored on a member.
type Permissions []string

// Grants reports whether the set contains the permission or the "all" sentinel.
func (ps Permissions) Grants(p Permission) bool {
	return slices.Contains(ps, PermissionAll.String()) || slices.Contains(ps, p.String())
}
