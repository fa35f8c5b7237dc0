package rbac

// Category groups the resources a role may act on.
type Category string

// Action is a single verb granted within a category.
type Action string

const (
	CategoryUsers   Category = "users"
	CategoryRoles   Category = "roles"
	CategoryContent Category = "content"
)

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryUsers, CategoryRoles, CategoryContent}
}

// Actions lists every action in canonical order.
func Actions() []Action {
	return []Action{ActionRead, ActionWrite, ActionDelete}
}

// Permissions maps a category to the actions granted for it.
type Permissions map[Category][]Action

// Full grants every action in every category.
func Full() Permissions {
	perms := make(Permissions, len(Categories()))
	for _, c := range Categories() {
		perms[c] = Actions()
	}
	return perms
}
