package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// BannerArt is the block-letter title shared with the home screen.
const BannerArt = `
  ██████╗ ███████╗ ██████╗  ██████╗ ██╗   ██╗██╗███████╗
 ██╔════╝ ██╔════╝██╔═══██╗██╔═══██╗██║   ██║██║╚══███╔╝
 ██║  ███╗█████╗  ██║   ██║██║   ██║██║   ██║██║  ███╔╝
 ██║   ██║██╔══╝  ██║   ██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ╚██████╔╝███████╗╚██████╔╝╚██████╔╝╚██████╔╝██║███████╗
  ╚═════╝ ╚══════╝ ╚═════╝  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

// BannerCompact is the fallback title for narrow terminals.
const BannerCompact = "G E O Q U I Z"

// bannerMinWidth is the narrowest terminal that fits BannerArt.
const bannerMinWidth = 58

// RenderBanner returns the GEOQUIZ banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
