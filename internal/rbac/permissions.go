package rbac

import (
	"fmt"
	"slices"
	"strings"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// ParseCategory accepts a category token in any case.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(raw)))
	if !slices.Contains(Categories(), c) {
		return "", shared.NewError(shared.ErrInvalid, fmt.Sprintf("unknown permission category %q", raw))
	}
	return c, nil
}

// ParseAction accepts an action token in any case.
func ParseAction(raw string) (Action, error) {
	a := Action(strings.TrimSpace(strings.ToLower(raw)))
	if !slices.Contains(Actions(), a) {
		return "", shared.NewError(shared.ErrInvalid, fmt.Sprintf("unknown permission action %q", raw))
	}
	return a, nil
}

// Has reports whether action is granted for category. A missing category or
// action is simply not granted.
func (p Permissions) Has(category Category, action Action) bool {
	return slices.Contains(p[category], action)
}

// Granted counts the granted actions across all categories.
func (p Permissions) Granted() int {
	n := 0
	for _, actions := range p {
		n += len(actions)
	}
	return n
}

// Clone returns a deep copy. Clone of nil is nil.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}
	out := make(Permissions, len(p))
	for c, actions := range p {
		out[c] = slices.Clone(actions)
	}
	return out
}

// Normalize validates every token and returns a copy with duplicates removed,
// actions in canonical order and empty categories dropped.
func Normalize(p Permissions) (Permissions, error) {
	granted := make(map[Category]map[Action]struct{}, len(p))
	for rawCategory, rawActions := range p {
		category, err := ParseCategory(string(rawCategory))
		if err != nil {
			return nil, err
		}
		// Keys differing only in case fold into one category.
		set := granted[category]
		if set == nil {
			set = make(map[Action]struct{}, len(rawActions))
			granted[category] = set
		}
		for _, raw := range rawActions {
			action, err := ParseAction(string(raw))
			if err != nil {
				return nil, err
			}
			set[action] = struct{}{}
		}
	}
	out := make(Permissions, len(granted))
	for category, set := range granted {
		for _, action := range Actions() {
			if _, ok := set[action]; ok {
				out[category] = append(out[category], action)
			}
		}
	}
	return out, nil
}

// With returns a normalized copy of p with action granted or revoked in category.
func (p Permissions) With(category Category, action Action, granted bool) (Permissions, error) {
	out := p.Clone()
	if out == nil {
		out = Permissions{}
	}
	actions := slices.DeleteFunc(out[category], func(a Action) bool { return a == action })
	if granted {
		actions = append(actions, action)
	}
	out[category] = actions
	return Normalize(out)
}
