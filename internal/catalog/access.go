package catalog

// IsCategoryAccessible reports whether the category may be entered. The first
// category is always accessible; any later one requires every form of its
// predecessor to be completed. Unknown ids are not accessible.
func (c Catalog) IsCategoryAccessible(categoryID string) bool {
	i := c.CategoryIndex(categoryID)
	switch {
	case i < 0:
		return false
	case i == 0:
		return true
	default:
		return c[i-1].AllCompleted()
	}
}

// IsFormAccessible reports whether the form may be opened. The first form of
// a category inherits the category's accessibility; any later form requires
// the form immediately before it to be completed.
func (c Catalog) IsFormAccessible(formID string) bool {
	ci, fi, ok := c.Locate(formID)
	if !ok {
		return false
	}
	if fi == 0 {
		return c.IsCategoryAccessible(c[ci].ID)
	}
	return c[ci].Forms[fi-1].Completed
}

// CategoryProgress returns the completed percentage of the category in
// [0, 100]. Unknown and empty categories report 0.
func (c Catalog) CategoryProgress(categoryID string) float64 {
	cat, ok := c.Category(categoryID)
	if !ok || len(cat.Forms) == 0 {
		return 0
	}
	return percent(cat.CompletedCount(), len(cat.Forms))
}

// OverallProgress returns the completed percentage over every form of the
// catalog in [0, 100]. An empty catalog reports 0.
func (c Catalog) OverallProgress() float64 {
	total, done := 0, 0
	for _, cat := range c {
		total += len(cat.Forms)
		done += cat.CompletedCount()
	}
	if total == 0 {
		return 0
	}
	return percent(done, total)
}

func percent(done, total int) float64 {
	return 100 * float64(done) / float64(total)
}
