package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffd700"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	boatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f4f4f4"))

	wakeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b0e0ff"))

	islandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b5a2b"))

	nearIslandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffd700"))

	mapTrail = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700"))
	mapRoute = lipgloss.NewStyle().Foreground(lipgloss.Color("#5d4037"))

	waveStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#29366f")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#3b5dc9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#41a6f6")),
	}

	cloudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4f4f4"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ffd700")).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688")).
			Italic(true)

	sparkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// Sparkline renders the magnitudes of values as block characters, newest
// on the right.
func Sparkline(values []float64, width int, max float64) string {
	chars := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	if max <= 0 {
		max = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		idx := int(v / max * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return sparkStyle.Render(b.String())
}
