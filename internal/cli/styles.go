package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/favicons/internal/colour"
)

var (
	colorInk     = lipgloss.Color("#E5E9F0")
	colorDim     = lipgloss.Color("#7A8291")
	colorAccent  = lipgloss.Color("#88C0D0")
	colorSuccess = lipgloss.Color("#A3BE8C")
	colorError   = lipgloss.Color("#BF616A")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorInk)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	okStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// swatch renders a hex colour setting as its value on a block of that
// colour. Other settings are shown as text only.
func swatch(s colour.Setting) string {
	rgb, ok := s.RGB()
	if !ok {
		return dimStyle.Render(s.String())
	}

	fg := lipgloss.Color("#000000")
	if rgb.IsDark() {
		fg = lipgloss.Color("#FFFFFF")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(rgb.Hex())).
		Foreground(fg).
		Render(" " + rgb.Hex() + " ")
}
