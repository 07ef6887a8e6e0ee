package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	donutRadius      = 70.0
	donutStrokeWidth = 28
	donutViewBox     = 180
	donutTrackColor  = "#e5e7eb"
)

// donutSegment is one colored arc of the ring chart.
type donutSegment struct {
	Label  string
	Color  string
	Count  int
	Length float64
	Offset float64
}

// donutSegments lays the non-zero counts out as contiguous arcs in the
// fixed order passed, failed, skipped, timedOut. Each arc's length is its
// share of the circumference; the running offset rotates consecutive arcs
// so they tile the ring with no overlap and no gap.
func donutSegments(passed, failed, skipped, timedOut, total int) []donutSegment {
	circumference := 2 * math.Pi * donutRadius

	ordered := []struct {
		label string
		color string
		count int
	}{
		{"Passed", "#22c55e", passed},
		{"Failed", "#ef4444", failed},
		{"Skipped", "#eab308", skipped},
		{"Timed out", "#f97316", timedOut},
	}

	var segments []donutSegment

	offset := 0.0

	for _, entry := range ordered {
		if entry.count == 0 {
			continue
		}

		length := float64(entry.count) / float64(total) * circumference
		segments = append(segments, donutSegment{
			Label:  entry.label,
			Color:  entry.color,
			Count:  entry.count,
			Length: length,
			Offset: offset,
		})
		offset += length
	}

	return segments
}

// RenderDonut renders the summary ring chart as inline SVG markup.
// A run with no tests renders an empty ring and a "No tests" label
// instead of computing arcs.
func RenderDonut(passed, failed, skipped, timedOut, total int, passRate string) string {
	center := donutViewBox / 2
	circumference := 2 * math.Pi * donutRadius

	var b strings.Builder

	fmt.Fprintf(&b, `<svg class="donut" viewBox="0 0 %d %d" role="img" aria-label="Result distribution">`,
		donutViewBox, donutViewBox)
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%.0f" fill="none" stroke="%s" stroke-width="%d"/>`,
		center, center, donutRadius, donutTrackColor, donutStrokeWidth)

	if total == 0 {
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="donut-label">No tests</text>`, center, center)
		b.WriteString(`</svg>`)

		return b.String()
	}

	for _, segment := range donutSegments(passed, failed, skipped, timedOut, total) {
		// Dash pattern draws only this segment's arc; the negative
		// dashoffset rotates it past the arcs already placed.
		fmt.Fprintf(&b,
			`<circle cx="%d" cy="%d" r="%.0f" fill="none" stroke="%s" stroke-width="%d" stroke-dasharray="%.3f %.3f" stroke-dashoffset="%.3f" transform="rotate(-90 %d %d)"/>`,
			center, center, donutRadius, segment.Color, donutStrokeWidth,
			segment.Length, circumference-segment.Length, -segment.Offset,
			center, center)
	}

	fmt.Fprintf(&b, `<text x="%d" y="%d" class="donut-label">%s%%</text>`, center, center, passRate)
	b.WriteString(`</svg>`)

	return b.String()
}

// donutLegend renders one legend entry per non-zero segment, in arc order.
func donutLegend(passed, failed, skipped, timedOut, total int) string {
	if total == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(`<ul class="donut-legend">`)

	for _, segment := range donutSegments(passed, failed, skipped, timedOut, total) {
		fmt.Fprintf(&b, `<li><span class="swatch" style="background:%s"></span>%s: %d</li>`,
			segment.Color, segment.Label, segment.Count)
	}

	b.WriteString(`</ul>`)

	return b.String()
}
