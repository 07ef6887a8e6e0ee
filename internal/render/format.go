// Package render turns run summaries and result records into the static
// HTML report document.
package render

import (
	"fmt"
	"math"
	"strings"

	m "tally.dev/pkg/tally/internal/model"
)

// FormatDuration renders a millisecond duration for display:
// sub-second as "{ms}ms", sub-minute as one-decimal seconds, and anything
// longer as "{m}m {s}s" with minutes floored and seconds rounded.
func FormatDuration(ms int) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	default:
		minutes := ms / 60000
		seconds := int(math.Round(float64(ms%60000) / 1000))

		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes test-supplied text before it is embedded in markup.
// Test titles and error output are arbitrary strings and must never be
// able to inject elements into the report.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// StatusIcon maps a status to its display glyph. Unknown statuses get a
// neutral glyph rather than failing.
func StatusIcon(status m.Status) string {
	switch status {
	case m.StatusPassed:
		return "✓"
	case m.StatusFailed:
		return "✗"
	case m.StatusSkipped:
		return "○"
	case m.StatusTimedOut:
		return "⏱"
	case m.StatusInterrupted:
		return "⊘"
	default:
		return "?"
	}
}

// StatusClass maps a status to the CSS class carried by its badge and row.
func StatusClass(status m.Status) string {
	switch status {
	case m.StatusPassed:
		return "passed"
	case m.StatusFailed:
		return "failed"
	case m.StatusSkipped:
		return "skipped"
	case m.StatusTimedOut:
		return "timed-out"
	case m.StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// browserFragments is the ordered match list for BrowserIcon; first
// substring match wins.
var browserFragments = []struct {
	fragments []string
	icon      string
}{
	{[]string{"chromium", "chrome"}, "🌐"},
	{[]string{"firefox"}, "🦊"},
	{[]string{"webkit", "safari"}, "🧭"},
	{[]string{"edge"}, "🔷"},
}

// BrowserIcon maps a project name to a browser-engine glyph via
// case-insensitive substring matching, falling back to a generic glyph.
func BrowserIcon(project string) string {
	name := strings.ToLower(project)

	for _, entry := range browserFragments {
		for _, fragment := range entry.fragments {
			if strings.Contains(name, fragment) {
				return entry.icon
			}
		}
	}

	return "💻"
}
