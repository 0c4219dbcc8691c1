package catalog

// FormInfo describes one form of the wizard.
type FormInfo struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Route      string `json:"route"`
	Completed  bool   `json:"completed"`
}

// CategoryInfo is an ordered group of forms. Form order defines traversal order.
type CategoryInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Forms       []FormInfo `json:"forms"`
}

// Catalog is the ordered list of categories making up the wizard.
type Catalog []CategoryInfo

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for i, cat := range c {
		out[i] = cat
		out[i].Forms = append([]FormInfo(nil), cat.Forms...)
	}
	return out
}

// CategoryIndex returns the position of the category with the given id, or -1.
func (c Catalog) CategoryIndex(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Category returns the category with the given id.
func (c Catalog) Category(id string) (CategoryInfo, bool) {
	i := c.CategoryIndex(id)
	if i < 0 {
		return CategoryInfo{}, false
	}
	return c[i], true
}

// Locate returns the category index and form index of the form with the
// given id. ok is false when no such form exists.
func (c Catalog) Locate(formID string) (catIdx, formIdx int, ok bool) {
	for i := range c {
		for j := range c[i].Forms {
			if c[i].Forms[j].ID == formID {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// Form returns the form with the given id.
func (c Catalog) Form(id string) (FormInfo, bool) {
	ci, fi, ok := c.Locate(id)
	if !ok {
		return FormInfo{}, false
	}
	return c[ci].Forms[fi], true
}

// FormByRoute returns the form whose route token equals route.
func (c Catalog) FormByRoute(route string) (FormInfo, bool) {
	for _, cat := range c {
		for _, f := range cat.Forms {
			if f.Route == route {
				return f, true
			}
		}
	}
	return FormInfo{}, false
}

// Forms returns every form in traversal order.
func (c Catalog) Forms() []FormInfo {
	var out []FormInfo
	for _, cat := range c {
		out = append(out, cat.Forms...)
	}
	return out
}

// MarkCompleted flips the form to completed. It reports whether anything
// changed: unknown ids, a form outside the named category, or an already
// completed form leave c untouched.
func (c Catalog) MarkCompleted(categoryID, formID string) bool {
	ci := c.CategoryIndex(categoryID)
	if ci < 0 {
		return false
	}
	for j := range c[ci].Forms {
		f := &c[ci].Forms[j]
		if f.ID != formID {
			continue
		}
		if f.Completed {
			return false
		}
		f.Completed = true
		return true
	}
	return false
}

// AllCompleted reports whether every form of the category is completed.
// A category with no forms counts as completed.
func (cat CategoryInfo) AllCompleted() bool {
	for _, f := range cat.Forms {
		if !f.Completed {
			return false
		}
	}
	return true
}

// CompletedCount returns the number of completed forms in the category.
func (cat CategoryInfo) CompletedCount() int {
	n := 0
	for _, f := range cat.Forms {
		if f.Completed {
			n++
		}
	}
	return n
}
