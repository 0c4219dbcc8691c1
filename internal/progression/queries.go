package progression

import (
	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/navigation"
)

// CategoryProgress returns the completed percentage of a category.
func (s *Store) CategoryProgress(categoryID string) float64 {
	return s.catalog.CategoryProgress(categoryID)
}

// OverallProgress returns the completed percentage over all forms.
func (s *Store) OverallProgress() float64 {
	return s.catalog.OverallProgress()
}

// IsCategoryAccessible reports whether a category may be entered.
func (s *Store) IsCategoryAccessible(categoryID string) bool {
	return s.catalog.IsCategoryAccessible(categoryID)
}

// IsFormAccessible reports whether a form may be opened.
func (s *Store) IsFormAccessible(formID string) bool {
	return s.catalog.IsFormAccessible(formID)
}

// Catalog returns a copy of the current catalog.
func (s *Store) Catalog() catalog.Catalog { return s.catalog.Clone() }

// Data returns a copy of the collected field data.
func (s *Store) Data() catalog.FieldMap { return s.data.Clone() }

// Cursor returns the current position.
func (s *Store) Cursor() navigation.Cursor { return s.cursor }

// Category returns a copy of the category with the given id.
func (s *Store) Category(id string) (catalog.CategoryInfo, bool) {
	cat, ok := s.catalog.Category(id)
	if ok {
		cat.Forms = append([]catalog.FormInfo(nil), cat.Forms...)
	}
	return cat, ok
}

// Form returns the form with the given id.
func (s *Store) Form(id string) (catalog.FormInfo, bool) { return s.catalog.Form(id) }

// Lock explains why a dashboard entry is disabled.
type Lock int

const (
	Unlocked Lock = iota
	CategoryLocked
	FormLocked
)

// FormEntry is one dashboard row.
type FormEntry struct {
	Form catalog.FormInfo
	Lock Lock
}

// Accessible reports whether the row can be activated.
func (e FormEntry) Accessible() bool { return e.Lock == Unlocked }

// ActionLabel is "Edit" for completed forms and "Start" otherwise.
func (e FormEntry) ActionLabel() string {
	if e.Form.Completed {
		return "Edit"
	}
	return "Start"
}

// CategoryEntry groups dashboard rows under their category.
type CategoryEntry struct {
	ID          string
	Name        string
	Description string
	Accessible  bool
	Progress    float64
	Forms       []FormEntry
}

// Overview derives the dashboard rows from the current catalog.
func (s *Store) Overview() []CategoryEntry { return OverviewOf(s.catalog) }

// OverviewOf derives dashboard rows from c.
func OverviewOf(c catalog.Catalog) []CategoryEntry {
	out := make([]CategoryEntry, 0, len(c))
	for _, cat := range c {
		catOpen := c.IsCategoryAccessible(cat.ID)
		entry := CategoryEntry{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Accessible:  catOpen,
			Progress:    c.CategoryProgress(cat.ID),
		}
		for _, f := range cat.Forms {
			lock := Unlocked
			switch {
			case !catOpen:
				lock = CategoryLocked
			case !c.IsFormAccessible(f.ID):
				lock = FormLocked
			}
			entry.Forms = append(entry.Forms, FormEntry{Form: f, Lock: lock})
		}
		out = append(out, entry)
	}
	return out
}
