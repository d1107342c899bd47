// Package export renders field snapshots to SVG for inspection
// outside the terminal.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/oceansim/internal/ocean"
)

// FieldToSVG draws the velocity field as a quiver plot: one line
// segment per cell, scaled by speed, plus tracer particles as dots.
// scale is the pixel size of one grid cell.
func FieldToSVG(g *ocean.FieldGrid, tr *ocean.TracerSystem, scale float64) string {
	if g == nil || scale <= 0 {
		return ""
	}

	width := float64(g.W) * scale
	height := float64(g.H) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#06121f"/>
`, width, height, width, height))

	sb.WriteString(`<g stroke="#4fc3f7" stroke-width="1">` + "\n")
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Idx(x, y)
			u, v := g.U[i], g.V[i]
			speed := math.Hypot(u, v)
			if speed < 1e-3 {
				continue
			}

			// Arrow length saturates at one cell.
			l := speed / ocean.MaxSpeed * scale
			cx := (float64(x) + 0.5) * scale
			cy := (float64(y) + 0.5) * scale
			dx := u / speed * l / 2
			dy := v / speed * l / 2

			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" opacity="%.2f"/>
`, cx-dx, cy-dy, cx+dx, cy+dy, 0.3+0.7*speed/ocean.MaxSpeed))
		}
	}
	sb.WriteString("</g>\n")

	if tr != nil {
		sb.WriteString(`<g fill="#ffd54f">` + "\n")
		for _, pt := range tr.Particles() {
			fill := ""
			if pt.Depth == ocean.Deep {
				fill = ` fill="#b388ff"`
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>
`, pt.X*scale, pt.Y*scale, scale*0.25, fill))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
