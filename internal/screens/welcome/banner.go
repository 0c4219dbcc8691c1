package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██████╗ ███╗   ███╗██╗    ██╗██╗███████╗
 ██╔════╝██╔═══██╗██╔══██╗████╗ ████║██║    ██║██║╚══███╔╝
 █████╗  ██║   ██║██████╔╝██╔████╔██║██║ █╗ ██║██║  ███╔╝
 ██╔══╝  ██║   ██║██╔══██╗██║╚██╔╝██║██║███╗██║██║ ███╔╝
 ██║     ╚██████╔╝██║  ██║██║ ╚═╝ ██║╚███╔███╔╝██║███████╗
 ╚═╝      ╚═════╝ ╚═╝  ╚═╝╚═╝     ╚═╝ ╚══╝╚══╝ ╚═╝╚══════╝`

const bannerCompact = "F O R M W I Z"

// RenderBanner returns the block-letter banner, or a spaced-out name on
// terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
