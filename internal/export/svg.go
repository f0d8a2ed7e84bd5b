// Package export renders recorded traces for use outside the terminal.
package export

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/san-kum/voyage/internal/poi"
	"github.com/san-kum/voyage/internal/replay"
)

type SVGOptions struct {
	Width, Height int
	Stroke        string
	Background    string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 300, Stroke: "#41a6f6", Background: "#0a0a0a"}
}

const svgPad = 10.0

// TraceSVG charts position over frames on a fixed 0..100 axis. Each island
// is a dashed line and each anchor event a dot on the path.
func TraceSVG(tr *replay.Trace, points []poi.Point, opts SVGOptions) string {
	if tr == nil || len(tr.Samples) < 2 {
		return ""
	}
	w, h := float64(opts.Width), float64(opts.Height)
	n := float64(len(tr.Samples) - 1)
	x := func(i int) float64 { return svgPad + float64(i)/n*(w-2*svgPad) }
	y := func(pos float64) float64 { return h - svgPad - pos/100*(h-2*svgPad) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	for _, p := range points {
		py := y(p.Position)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#555" stroke-dasharray="4 4"/>
<text x="%.1f" y="%.1f" fill="#888" font-size="10">%s</text>
`, svgPad, py, w-svgPad, py, svgPad+2, py-2, html.EscapeString(p.ID)))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.Stroke))
	for i, s := range tr.Samples {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x(i), y(s.Position)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x(i), y(s.Position)))
		}
	}
	sb.WriteString("\"/>\n")

	for _, a := range tr.Anchors {
		i := min(max(a.Frame, 0), len(tr.Samples)-1)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#ffcd75"><title>%s</title></circle>
`, x(i), y(tr.Samples[i].Position), html.EscapeString(a.PointID)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteTraceSVG(path string, tr *replay.Trace, points []poi.Point, opts SVGOptions) error {
	svg := TraceSVG(tr, points, opts)
	if svg == "" {
		return fmt.Errorf("trace too short to chart")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
