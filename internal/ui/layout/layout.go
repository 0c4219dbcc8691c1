// Package layout draws the frame around every screen.
package layout

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to resize.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the app name, the breadcrumb title and the overall
// completion percentage.
func RenderHeader(title string, overall float64, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("formwiz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("%d%% complete", int(math.Round(overall))))

	inner := max(width-4, 0)
	leftW, centerW, rightW := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-centerW)/2-leftW, 1)
	rightGap := max(inner-leftW-leftGap-centerW-rightW, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

// RenderFooter draws the key hints. A non-empty status replaces them.
func RenderFooter(hints []KeyHint, status string, width int) string {
	content := status
	if content == "" {
		parts := make([]string, len(hints))
		for i, h := range hints {
			parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
				" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		}
		content = strings.Join(parts, "   ")
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

// RenderFrame stacks header, content and footer into a full window.
func RenderFrame(header, content, footer string, width, height int) string {
	body := ContentHeight(header, footer, height)
	content = lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// ContentHeight is the room left for a screen between header and footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
