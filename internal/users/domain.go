package users

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Status is the account state shown on the user list.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// ParseStatus accepts a status in any case, e.g. "inactive".
func ParseStatus(raw string) (Status, error) {
	s := Status(cases.Title(language.English).String(strings.TrimSpace(raw)))
	switch s {
	case StatusActive, StatusInactive:
		return s, nil
	}
	return "", shared.NewError(shared.ErrInvalid, fmt.Sprintf("unknown user status %q", raw))
}

// User represents a user account for management.
type User struct {
	ID     string
	Name   string
	Email  string
	Role   string // name of the assigned role, not kept in sync on rename
	Status Status
}

// CreateInput carries the fields of a new user.
type CreateInput struct {
	Name   string
	Email  string
	Role   string
	Status Status
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name   *string
	Email  *string
	Role   *string
	Status *Status
}

// Apply merges the provided fields over u.
func (in UpdateInput) Apply(u User) User {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	return u
}

var (
	// ErrNotFound is returned when no user has the requested id.
	ErrNotFound = shared.NewError(shared.ErrNotFound, "user not found")
)
