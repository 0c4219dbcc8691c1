package catalog

import (
	"fmt"
	"strings"
)

// Validate performs the structural checks on c and returns a combined error
// describing every problem found, or nil if c is well formed.
func (c Catalog) Validate() error {
	var errs []string

	catIDs := make(map[string]bool, len(c))
	formIDs := make(map[string]bool)
	routes := make(map[string]string)

	for i, cat := range c {
		if cat.ID == "" {
			errs = append(errs, fmt.Sprintf("category at index %d has an empty ID", i))
		} else if catIDs[cat.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category ID: %q", cat.ID))
		}
		catIDs[cat.ID] = true

		for _, f := range cat.Forms {
			switch {
			case f.ID == "":
				errs = append(errs, fmt.Sprintf("category %q has a form with an empty ID", cat.ID))
			case formIDs[f.ID]:
				errs = append(errs, fmt.Sprintf("duplicate form ID: %q", f.ID))
			}
			formIDs[f.ID] = true

			if f.CategoryID != cat.ID {
				errs = append(errs, fmt.Sprintf("form %q references category %q but is listed under %q", f.ID, f.CategoryID, cat.ID))
			}
			if f.Route == "" {
				errs = append(errs, fmt.Sprintf("form %q has an empty route", f.ID))
			} else if owner, dup := routes[f.Route]; dup {
				errs = append(errs, fmt.Sprintf("forms %q and %q share route %q", owner, f.ID, f.Route))
			} else {
				routes[f.Route] = f.ID
			}
		}
	}

	for _, f := range c.Forms() {
		if f.ID != "" && catIDs[f.ID] {
			errs = append(errs, fmt.Sprintf("ID %q is used by both a category and a form", f.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// SameShape reports whether other has the same categories and forms, in the
// same order, as c. Completion flags are ignored.
func (c Catalog) SameShape(other Catalog) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i].ID != other[i].ID || len(c[i].Forms) != len(other[i].Forms) {
			return false
		}
		for j := range c[i].Forms {
			if c[i].Forms[j].ID != other[i].Forms[j].ID {
				return false
			}
		}
	}
	return true
}
