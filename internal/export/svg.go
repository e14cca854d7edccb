package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/flycam/internal/sim"
	"github.com/san-kum/flycam/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// CanvasToSVG draws each set braille dot as a circle.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	dw, dh := canvas.Dots()
	w, h := int(float64(dw)*scale), int(float64(dh)*scale)

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, w, h, w, h)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PathToSVG draws the ground track of a run seen from above: +X to the
// right, -Z (the starting forward direction) up.
func PathToSVG(samples []sim.Sample, width, height int, stroke string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := samples[0].Position.X(), samples[0].Position.X()
	minY, maxY := -samples[0].Position.Z(), -samples[0].Position.Z()
	for _, s := range samples {
		x, y := s.Position.X(), -s.Position.Z()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX, minX = 1, minX-0.5
	}
	if rangeY == 0 {
		rangeY, minY = 1, minY-0.5
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", stroke)

	for i, s := range samples {
		x := (s.Position.X() - minX) / rangeX * float64(width)
		y := float64(height) - (-s.Position.Z()-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
