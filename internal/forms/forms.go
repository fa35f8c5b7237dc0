// Package forms holds the field rules that the dashboard's edit dialogs apply
// before calling the users and roles services. The services never enforce
// them; a caller may skip this package entirely.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

// FieldErrors maps a form field to the message shown under it.
type FieldErrors map[string]string

// UserForm is the add/edit user dialog.
type UserForm struct {
	Name   string `form:"name" validate:"required"`
	Email  string `form:"email" validate:"required,email"`
	Role   string `form:"role" validate:"required"`
	Status string `form:"status" validate:"required,oneof=Active Inactive"`
}

// RoleForm is the add/edit role dialog.
type RoleForm struct {
	Name        string           `form:"name" validate:"required"`
	Description string           `form:"description" validate:"required"`
	Permissions rbac.Permissions `form:"permissions" validate:"granted"`
}

// Validator checks forms. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the dashboard's custom rules.
func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("granted", func(fl validator.FieldLevel) bool {
		perms, ok := fl.Field().Interface().(rbac.Permissions)
		return ok && perms.Granted() > 0
	}); err != nil {
		return nil, fmt.Errorf("register granted rule: %w", err)
	}
	return &Validator{validate: v}, nil
}

// ValidateUser returns the field errors of f, or nil when it is valid.
func (v *Validator) ValidateUser(f UserForm) FieldErrors {
	return v.check(f)
}

// ValidateRole returns the field errors of f, or nil when it is valid.
func (v *Validator) ValidateRole(f RoleForm) FieldErrors {
	return v.check(f)
}

func (v *Validator) check(form any) FieldErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return FieldErrors{"general": err.Error()}
	}
	out := make(FieldErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "granted":
		return "At least one permission is required"
	default:
		return fe.Error()
	}
}

// UserFormFrom fills the dialog from an existing user.
func UserFormFrom(u users.User) UserForm {
	return UserForm{Name: u.Name, Email: u.Email, Role: u.Role, Status: string(u.Status)}
}

// CreateInput converts the form for users.Service.CreateUser.
func (f UserForm) CreateInput() users.CreateInput {
	return users.CreateInput{Name: f.Name, Email: f.Email, Role: f.Role, Status: users.Status(f.Status)}
}

// UpdateInput converts the form for users.Service.UpdateUser. The dialog
// always submits every field.
func (f UserForm) UpdateInput() users.UpdateInput {
	status := users.Status(f.Status)
	return users.UpdateInput{Name: &f.Name, Email: &f.Email, Role: &f.Role, Status: &status}
}

// RoleFormFrom fills the dialog from an existing role.
func RoleFormFrom(r roles.Role) RoleForm {
	return RoleForm{Name: r.Name, Description: r.Description, Permissions: r.Permissions.Clone()}
}

// CreateInput converts the form for roles.Service.CreateRole.
func (f RoleForm) CreateInput() roles.CreateInput {
	return roles.CreateInput{Name: f.Name, Description: f.Description, Permissions: f.Permissions.Clone()}
}

// UpdateInput converts the form for roles.Service.UpdateRole.
func (f RoleForm) UpdateInput() roles.UpdateInput {
	perms := f.Permissions.Clone()
	if perms == nil {
		perms = rbac.Permissions{}
	}
	return roles.UpdateInput{Name: &f.Name, Description: &f.Description, Permissions: perms}
}
