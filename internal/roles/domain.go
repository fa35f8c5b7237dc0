package roles

import (
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Role represents a role for management. Roles are addressed by ID; Name is a
// display attribute that users reference by value.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions rbac.Permissions
}

// Clone returns a copy that shares no permission slices with r.
func (r Role) Clone() Role {
	r.Permissions = r.Permissions.Clone()
	return r
}

// CreateInput carries the fields of a new role.
type CreateInput struct {
	Name        string
	Description string
	Permissions rbac.Permissions
}

// UpdateInput carries a partial update; nil fields are left untouched.
// A non-nil Permissions replaces the whole map.
type UpdateInput struct {
	Name        *string
	Description *string
	Permissions rbac.Permissions
}

// Apply merges the provided fields over r.
func (in UpdateInput) Apply(r Role) Role {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Permissions != nil {
		r.Permissions = in.Permissions.Clone()
	}
	return r
}

// MatrixRow is one role's card on the permission management screen.
type MatrixRow struct {
	RoleID   string
	RoleName string
	Sections []rbac.MatrixSection
}

var (
	// ErrNotFound is returned when no role has the requested id.
	ErrNotFound = shared.NewError(shared.ErrNotFound, "role not found")
	// ErrAlreadyExists is returned when another role already uses the name.
	ErrAlreadyExists = shared.NewError(shared.ErrAlreadyExists, "role already exists")
	// ErrInUse is returned when deleting a role that users are still assigned to.
	ErrInUse = shared.NewError(shared.ErrInUse, "cannot delete role: role is assigned to users")
)
