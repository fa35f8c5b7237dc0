package rbac

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title builds a fresh Caser per call; a Caser must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Label returns the display label for the category, e.g. "Content".
func (c Category) Label() string {
	return title(string(c))
}

// Label returns the display label for the action, e.g. "Write".
func (a Action) Label() string {
	return title(string(a))
}

// MatrixCell is one toggle of the permission grid.
type MatrixCell struct {
	Action  Action
	Label   string
	Granted bool
}

// MatrixSection holds the toggles of one category.
type MatrixSection struct {
	Category Category
	Label    string
	Cells    []MatrixCell
}

// Matrix expands p into every category x action pair in display order.
func Matrix(p Permissions) []MatrixSection {
	sections := make([]MatrixSection, 0, len(Categories()))
	for _, c := range Categories() {
		section := MatrixSection{Category: c, Label: c.Label()}
		for _, a := range Actions() {
			section.Cells = append(section.Cells, MatrixCell{Action: a, Label: a.Label(), Granted: p.Has(c, a)})
		}
		sections = append(sections, section)
	}
	return sections
}
