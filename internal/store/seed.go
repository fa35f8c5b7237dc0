package store

import (
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

func seedUsers() []users.User {
	return []users.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: "Admin", Status: users.StatusActive},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: "Editor", Status: users.StatusActive},
		{ID: "3", Name: "Bob Wilson", Email: "bob@example.com", Role: "Viewer", Status: users.StatusInactive},
	}
}

func seedRoles() []roles.Role {
	return []roles.Role{
		{
			ID:          "1",
			Name:        "Admin",
			Description: "Full system access",
			Permissions: rbac.Full(),
		},
		{
			ID:          "2",
			Name:        "Editor",
			Description: "Can manage content and view users",
			Permissions: rbac.Permissions{
				rbac.CategoryUsers:   {rbac.ActionRead},
				rbac.CategoryRoles:   {rbac.ActionRead},
				rbac.CategoryContent: {rbac.ActionRead, rbac.ActionWrite},
			},
		},
		{
			ID:          "3",
			Name:        "Viewer",
			Description: "Read-only access",
			Permissions: rbac.Permissions{
				rbac.CategoryUsers:   {rbac.ActionRead},
				rbac.CategoryRoles:   {rbac.ActionRead},
				rbac.CategoryContent: {rbac.ActionRead},
			},
		},
	}
}
