// Package navigation computes where the wizard moves next. Every function is
// a pure function of a catalog and a cursor.
package navigation

import "github.com/abhisek/formwiz/internal/catalog"

// Cursor is the user's logical position. Empty strings mean "none".
type Cursor struct {
	CategoryID string `json:"categoryId"`
	FormID     string `json:"formId"`
}

// IsZero reports whether the cursor points nowhere.
func (c Cursor) IsZero() bool { return c.CategoryID == "" && c.FormID == "" }

// Kind classifies a navigation outcome.
type Kind int

const (
	NoOp Kind = iota
	MoveTo
	Blocked
	Finished
)

func (k Kind) String() string {
	switch k {
	case MoveTo:
		return "move"
	case Blocked:
		return "blocked"
	case Finished:
		return "finished"
	default:
		return "noop"
	}
}

// ReasonCategoryLocked is the Blocked reason when the next category is gated.
const ReasonCategoryLocked = "category locked"

// Action is the outcome of Next or Previous. CategoryID, FormID and Route are
// set for MoveTo; Route is catalog.RouteCompletion for Finished; Reason is set
// for Blocked.
type Action struct {
	Kind       Kind
	CategoryID string
	FormID     string
	Route      string
	Reason     string
}

func moveTo(f catalog.FormInfo) Action {
	return Action{Kind: MoveTo, CategoryID: f.CategoryID, FormID: f.ID, Route: f.Route}
}

// locate resolves the cursor to category and form indices. The form must live
// in the cursor's category.
func locate(c catalog.Catalog, cur Cursor) (int, int, bool) {
	if cur.CategoryID == "" || cur.FormID == "" {
		return 0, 0, false
	}
	ci := c.CategoryIndex(cur.CategoryID)
	if ci < 0 {
		return 0, 0, false
	}
	for fi, f := range c[ci].Forms {
		if f.ID == cur.FormID {
			return ci, fi, true
		}
	}
	return 0, 0, false
}

// Next returns the form after the cursor position.
func Next(c catalog.Catalog, cur Cursor) Action {
	ci, fi, ok := locate(c, cur)
	if !ok {
		return Action{Kind: NoOp}
	}

	forms := c[ci].Forms
	if fi < len(forms)-1 {
		return moveTo(forms[fi+1])
	}

	if ci == len(c)-1 {
		return Action{Kind: Finished, Route: catalog.RouteCompletion}
	}

	next := c[ci+1]
	if !c.IsCategoryAccessible(next.ID) || len(next.Forms) == 0 {
		return Action{Kind: Blocked, CategoryID: next.ID, Reason: ReasonCategoryLocked}
	}
	return moveTo(next.Forms[0])
}

// Previous returns the form before the cursor position, crossing into the
// last form of the previous category when needed.
func Previous(c catalog.Catalog, cur Cursor) Action {
	ci, fi, ok := locate(c, cur)
	if !ok {
		return Action{Kind: NoOp}
	}

	if fi > 0 {
		return moveTo(c[ci].Forms[fi-1])
	}
	if ci == 0 {
		return Action{Kind: NoOp}
	}

	prev := c[ci-1]
	if len(prev.Forms) == 0 {
		return Action{Kind: NoOp}
	}
	return moveTo(prev.Forms[len(prev.Forms)-1])
}
