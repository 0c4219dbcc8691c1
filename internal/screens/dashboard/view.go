package dashboard

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/ui/components"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// contentWidth is the width shared by every card so they line up.
func contentWidth(width int) int {
	return min(max(width-6, 30), 72)
}

func render(cats []progression.CategoryEntry, overall float64, selected int, confirmReset bool, width, height int) string {
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, components.NewProgressBar("Overall", overall, true, cw).View())

	row := 0
	for _, cat := range cats {
		sections = append(sections, renderCategory(cat, &row, selected, cw))
	}

	if confirmReset {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Warning).Bold(true).
			Render("Reset all answers and progress? (y/n)"))
	} else if overall >= 100 {
		sections = append(sections, theme.Done.Render("All forms complete. Press c to review your answers."))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// renderCategory draws one card. row is the running index of form rows
// across cards and is advanced past this category.
func renderCategory(cat progression.CategoryEntry, row *int, selected, cw int) string {
	var b strings.Builder

	name := theme.Label.Render(cat.Name)
	if !cat.Accessible {
		name = theme.Locked.Render(cat.Name + " (locked)")
	}
	b.WriteString(name)
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d%%", int(math.Round(cat.Progress)))))
	b.WriteString("\n")
	if cat.Description != "" {
		b.WriteString(theme.Hint.Render(cat.Description))
		b.WriteString("\n")
	}
	b.WriteString(components.NewProgressBar("", cat.Progress, false, cw-6).View())
	b.WriteString("\n")

	for _, f := range cat.Forms {
		b.WriteString("\n")
		b.WriteString(renderRow(f, *row == selected))
		*row++
	}

	return theme.Card.Width(cw).Render(b.String())
}

func renderRow(f progression.FormEntry, focused bool) string {
	mark := "[ ]"
	if f.Form.Completed {
		mark = "[x]"
	}

	label := f.ActionLabel()
	switch f.Lock {
	case progression.CategoryLocked, progression.FormLocked:
		label = "Locked"
	}

	prefix := "  "
	if focused {
		prefix = "▸ "
	}
	line := fmt.Sprintf("%s%s %s", prefix, mark, f.Form.Name)
	action := "[" + label + "]"

	switch {
	case !f.Accessible():
		return theme.Locked.Render(line + "  " + action)
	case focused:
		return theme.Selected.Render(line) + "  " + theme.ButtonActive.Padding(0, 1).Render(label)
	case f.Form.Completed:
		return theme.Done.Render(line) + "  " + theme.Subtitle.Render(action)
	default:
		return theme.Unselected.Render(line) + "  " + theme.Subtitle.Render(action)
	}
}
