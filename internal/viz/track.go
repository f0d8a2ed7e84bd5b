package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/voyage/internal/poi"
	"github.com/san-kum/voyage/internal/scene"
)

const (
	boatGlyph  = "◭"
	wakeGlyph  = '≈'
	starGlyph  = '·'
	cloudTile  = "   ☁        ☁      ☁          "
	islandMark = '▲'
)

var wavePatterns = []string{
	"~    ~~   ~      ~~~    ~   ",
	" ~~   ~    ~~~  ~    ~~  ~  ",
	"~~ ~~~  ~~  ~ ~~~~  ~~ ~  ~~",
}

// columnFor maps a track position onto a column in [0, width).
func columnFor(position float64, width int) int {
	if width <= 1 {
		return 0
	}
	col := int(math.Round(position / 100 * float64(width-1)))
	if col < 0 {
		return 0
	}
	if col >= width {
		return width - 1
	}
	return col
}

// layerShift converts a parallax offset in percent into whole columns. The
// layers are twice as wide as the track.
func layerShift(offset float64, width int) int {
	return int(math.Round(offset / 100 * float64(2*width)))
}

// tile repeats pattern across width columns, scrolled by shift.
func tile(pattern string, width, shift int) string {
	runes := []rune(pattern)
	n := len(runes)
	if n == 0 || width <= 0 {
		return ""
	}
	out := make([]rune, width)
	for i := range out {
		j := ((i-shift)%n + n) % n
		out[i] = runes[j]
	}
	return string(out)
}

func skyRow(color string, width int, stars float64, seed int) string {
	row := []rune(strings.Repeat(" ", width))
	if stars > 0 {
		every := int(12 / stars)
		if every < 3 {
			every = 3
		}
		for i := seed % every; i < width; i += every {
			row[i] = starGlyph
		}
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#ffffff")).
		Render(string(row))
}

func islandRow(points []poi.Point, width int, nearest string) string {
	row := []rune(strings.Repeat(" ", width))
	for _, p := range points {
		row[columnFor(p.Position, width)] = islandMark
	}

	var b strings.Builder
	for i, r := range row {
		if r != islandMark {
			b.WriteRune(r)
			continue
		}
		style := islandStyle
		for _, p := range points {
			if p.ID == nearest && columnFor(p.Position, width) == i {
				style = nearIslandStyle
			}
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func labelRow(points []poi.Point, width int, nearest string) string {
	row := []rune(strings.Repeat(" ", width))
	for _, p := range points {
		if p.ID != nearest {
			continue
		}
		label := []rune(p.Label)
		start := columnFor(p.Position, width) - len(label)/2
		if start < 0 {
			start = 0
		}
		for i, r := range label {
			if start+i < width {
				row[start+i] = r
			}
		}
	}
	return nearIslandStyle.Render(string(row))
}

func boatRow(width, col int, wake scene.Wake, waves string) string {
	row := []rune(waves)
	if len(row) < width {
		row = append(row, []rune(strings.Repeat(" ", width-len(row)))...)
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == col:
			b.WriteString(boatStyle.Render(boatGlyph))
		case wake.Visible && wake.FacingRight && i >= col-3 && i < col:
			b.WriteString(wakeStyle.Render(string(wakeGlyph)))
		case wake.Visible && !wake.FacingRight && i > col && i <= col+3:
			b.WriteString(wakeStyle.Render(string(wakeGlyph)))
		default:
			b.WriteString(waveStyles[2].Render(string(row[i])))
		}
	}
	return b.String()
}

// mapRow draws the voyage map: a gold trail up to the boat, islands as
// markers that fill once visited.
func mapRow(points []poi.Point, position float64, width int) string {
	col := columnFor(position, width)
	var b strings.Builder
	for i := 0; i < width; i++ {
		marker := rune(0)
		visited := false
		for _, p := range points {
			if columnFor(p.Position, width) == i {
				marker = '◇'
				if scene.Visited(p, position) {
					marker, visited = '◆', true
				}
			}
		}
		switch {
		case marker != 0 && visited:
			b.WriteString(mapTrail.Render(string(marker)))
		case marker != 0:
			b.WriteString(mapRoute.Render(string(marker)))
		case i <= col:
			b.WriteString(mapTrail.Render("━"))
		default:
			b.WriteString(mapRoute.Render("╌"))
		}
	}
	return b.String()
}
