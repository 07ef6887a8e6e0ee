package render

import (
	"fmt"
	"strings"

	m "tally.dev/pkg/tally/internal/model"
)

// Render produces the complete self-contained HTML report document for one
// run. It is a pure function of the summary, the records in completion
// order, and the page title; it performs no I/O.
func Render(summary m.RunSummary, records []m.ResultRecord, title string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", EscapeHTML(title))
	b.WriteString("<style>\n" + reportStyle + "</style>\n")
	b.WriteString("</head>\n<body>\n")

	renderHeader(&b, summary, title)
	renderSummaryCards(&b, summary)
	renderChartPanel(&b, summary)
	renderToolbar(&b, summary)
	renderResultsTable(&b, records)

	b.WriteString("<script>\n" + reportScript + "</script>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func renderHeader(b *strings.Builder, summary m.RunSummary, title string) {
	bannerClass := "banner-passed"
	bannerLabel := "PASSED"

	switch summary.OverallStatus {
	case m.RunFailed:
		bannerClass = "banner-failed"
		bannerLabel = "FAILED"
	case m.RunInterrupted:
		bannerClass = "banner-interrupted"
		bannerLabel = "INTERRUPTED"
	case m.RunPassed:
	}

	b.WriteString(`<header class="header">`)
	fmt.Fprintf(b, `<h1>%s</h1>`, EscapeHTML(title))
	fmt.Fprintf(b, `<span class="banner %s">%s</span>`, bannerClass, bannerLabel)
	fmt.Fprintf(b, `<p class="meta">%s · %s → %s · %s</p>`,
		summary.StartTime.Format("Jan 2, 2006"),
		summary.StartTime.Format("15:04:05"),
		summary.EndTime.Format("15:04:05"),
		FormatDuration(summary.DurationMs))
	b.WriteString("</header>\n")
}

func renderSummaryCards(b *strings.Builder, summary m.RunSummary) {
	cards := []struct {
		label string
		value string
		class string
	}{
		{"Total", fmt.Sprintf("%d", summary.Total), "total"},
		{"Passed", fmt.Sprintf("%d", summary.Passed), "passed"},
		{"Failed", fmt.Sprintf("%d", summary.Failed), "failed"},
		{"Skipped", fmt.Sprintf("%d", summary.Skipped), "skipped"},
		{"Duration", FormatDuration(summary.DurationMs), "duration"},
		{"Pass rate", summary.PassRate + "%", "pass-rate"},
	}

	b.WriteString(`<section class="cards">`)

	for _, card := range cards {
		fmt.Fprintf(b, `<div class="card card-%s"><span class="value">%s</span><span class="label">%s</span></div>`,
			card.class, card.value, card.label)
	}

	b.WriteString("</section>\n")
}

func renderChartPanel(b *strings.Builder, summary m.RunSummary) {
	b.WriteString(`<section class="panel">`)

	b.WriteString(`<div class="chart">`)
	b.WriteString(RenderDonut(summary.Passed, summary.Failed, summary.Skipped, summary.TimedOut, summary.Total, summary.PassRate))
	b.WriteString(donutLegend(summary.Passed, summary.Failed, summary.Skipped, summary.TimedOut, summary.Total))
	b.WriteString(`</div>`)

	b.WriteString(`<div class="projects">`)

	for _, group := range summary.ByProject {
		passed, failed := 0, 0

		for _, record := range group.Records {
			switch record.Status {
			case m.StatusPassed:
				passed++
			case m.StatusFailed:
				failed++
			case m.StatusSkipped, m.StatusTimedOut, m.StatusInterrupted:
			}
		}

		fmt.Fprintf(b,
			`<button class="project-card" data-project="%s" onclick="toggleProject(this.dataset.project)">`+
				`<span class="project-icon">%s</span><span class="project-name">%s</span>`+
				`<span class="project-counts"><span class="passed">%d ✓</span> <span class="failed">%d ✗</span> / %d</span>`+
				`</button>`,
			EscapeHTML(group.Name), BrowserIcon(group.Name), EscapeHTML(group.Name),
			passed, failed, len(group.Records))
	}

	b.WriteString(`</div>`)
	b.WriteString("</section>\n")
}

func renderToolbar(b *strings.Builder, summary m.RunSummary) {
	filters := []struct {
		value string
		label string
		count int
	}{
		{"all", "All", summary.Total},
		{"passed", "Passed", summary.Passed},
		{"failed", "Failed", summary.Failed},
		{"skipped", "Skipped", summary.Skipped},
	}

	b.WriteString(`<section class="toolbar">`)
	b.WriteString(`<div class="filters">`)

	for _, filter := range filters {
		active := ""
		if filter.value == "all" {
			active = " active"
		}

		fmt.Fprintf(b,
			`<button class="filter%s" data-status="%s" onclick="setStatusFilter(this.dataset.status)">%s <span class="count">%d</span></button>`,
			active, filter.value, filter.label, filter.count)
	}

	b.WriteString(`</div>`)
	b.WriteString(`<input type="search" id="search" placeholder="Search tests…" oninput="setSearch(this.value)">`)
	b.WriteString("</section>\n")
}

func renderResultsTable(b *strings.Builder, records []m.ResultRecord) {
	b.WriteString(`<table class="results">`)
	b.WriteString(`<thead><tr><th>#</th><th>Status</th><th>Test</th><th>Project</th><th>Duration</th><th>Retries</th></tr></thead>`)
	b.WriteString(`<tbody id="rows">`)

	if len(records) == 0 {
		b.WriteString(`<tr class="empty"><td colspan="6">No tests were run.</td></tr>`)
	}

	for i, record := range records {
		renderRow(b, i+1, record)
	}

	b.WriteString(`</tbody></table>` + "\n")
}

func renderRow(b *strings.Builder, index int, record m.ResultRecord) {
	class := StatusClass(record.Status)

	fmt.Fprintf(b, `<tr class="row %s" data-status="%s" data-project="%s" data-file="%s">`,
		class, EscapeHTML(string(record.Status)), EscapeHTML(record.Project), EscapeHTML(record.File))

	fmt.Fprintf(b, `<td class="index">%d</td>`, index)
	fmt.Fprintf(b, `<td><span class="badge %s">%s %s</span></td>`, class, StatusIcon(record.Status), EscapeHTML(string(record.Status)))

	b.WriteString(`<td class="test">`)
	fmt.Fprintf(b, `<div class="title">%s</div>`, EscapeHTML(record.Title))

	if record.Suite != "" {
		fmt.Fprintf(b, `<div class="suite">%s</div>`, EscapeHTML(record.Suite))
	}

	fmt.Fprintf(b, `<div class="location">%s:%d</div>`, EscapeHTML(record.File), record.Line)

	for _, testErr := range record.Errors {
		b.WriteString(`<pre class="error">`)
		b.WriteString(EscapeHTML(testErr.Message))

		if testErr.Snippet != "" {
			b.WriteString("\n" + EscapeHTML(testErr.Snippet))
		}

		if testErr.Stack != "" {
			b.WriteString("\n" + EscapeHTML(testErr.Stack))
		}

		b.WriteString(`</pre>`)
	}

	renderSteps(b, record.Steps)
	renderAnnotations(b, record.Annotations)
	b.WriteString(`</td>`)

	fmt.Fprintf(b, `<td><span class="project">%s %s</span></td>`, BrowserIcon(record.Project), EscapeHTML(record.Project))
	fmt.Fprintf(b, `<td class="duration">%s</td>`, FormatDuration(record.Duration))

	retries := "—"
	if record.Retries > 0 {
		retries = fmt.Sprintf("%d", record.Retries)
	}

	fmt.Fprintf(b, `<td class="retries">%s</td>`, retries)
	b.WriteString(`</tr>`)
}

func renderSteps(b *strings.Builder, steps []m.Step) {
	if len(steps) == 0 {
		return
	}

	fmt.Fprintf(b, `<details class="steps"><summary>%d steps</summary><ul>`, len(steps))

	for _, step := range steps {
		class := "step"
		if step.Error != "" {
			class = "step step-error"
		}

		fmt.Fprintf(b, `<li class="%s"><span class="category">%s</span> %s <span class="duration">%s</span>`,
			class, EscapeHTML(step.Category), EscapeHTML(step.Title), FormatDuration(step.Duration))

		if step.Error != "" {
			fmt.Fprintf(b, `<pre class="error">%s</pre>`, EscapeHTML(step.Error))
		}

		b.WriteString(`</li>`)
	}

	b.WriteString(`</ul></details>`)
}

func renderAnnotations(b *strings.Builder, annotations []m.Annotation) {
	if len(annotations) == 0 {
		return
	}

	b.WriteString(`<div class="annotations">`)

	for _, annotation := range annotations {
		fmt.Fprintf(b, `<span class="annotation">%s`, EscapeHTML(annotation.Type))

		if annotation.Description != "" {
			fmt.Fprintf(b, `: %s`, EscapeHTML(annotation.Description))
		}

		b.WriteString(`</span>`)
	}

	b.WriteString(`</div>`)
}

// reportStyle is the inline stylesheet; the document must stay viewable
// from a local file with no external assets.
const reportStyle = `
:root { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #1f2937; }
body { margin: 0 auto; max-width: 1100px; padding: 24px; background: #f9fafb; }
.header h1 { display: inline-block; margin: 0 12px 0 0; font-size: 1.6rem; }
.banner { padding: 4px 12px; border-radius: 999px; color: #fff; font-weight: 600; vertical-align: middle; }
.banner-passed { background: #22c55e; }
.banner-failed { background: #ef4444; }
.banner-interrupted { background: #f97316; }
.meta { color: #6b7280; margin: 8px 0 0; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(130px, 1fr)); gap: 12px; margin: 24px 0; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 14px; text-align: center; }
.card .value { display: block; font-size: 1.5rem; font-weight: 700; }
.card .label { color: #6b7280; font-size: 0.8rem; text-transform: uppercase; }
.card-passed .value { color: #22c55e; }
.card-failed .value { color: #ef4444; }
.card-skipped .value { color: #eab308; }
.panel { display: flex; gap: 24px; align-items: flex-start; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 18px; margin-bottom: 24px; }
.donut { width: 180px; height: 180px; }
.donut-label { text-anchor: middle; dominant-baseline: central; font-size: 1.3rem; font-weight: 700; }
.donut-legend { list-style: none; margin: 10px 0 0; padding: 0; font-size: 0.85rem; }
.donut-legend .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 6px; }
.projects { display: flex; flex-wrap: wrap; gap: 12px; }
.project-card { display: flex; flex-direction: column; gap: 4px; border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px 16px; background: #fff; cursor: pointer; font: inherit; }
.project-card.active { border-color: #3b82f6; box-shadow: 0 0 0 2px #bfdbfe; }
.project-counts .passed { color: #22c55e; }
.project-counts .failed { color: #ef4444; }
.toolbar { display: flex; justify-content: space-between; gap: 12px; margin-bottom: 12px; flex-wrap: wrap; }
.filter { border: 1px solid #e5e7eb; background: #fff; border-radius: 6px; padding: 6px 12px; cursor: pointer; font: inherit; }
.filter.active { background: #1f2937; color: #fff; }
.filter .count { opacity: 0.7; }
#search { flex: 1; max-width: 320px; border: 1px solid #e5e7eb; border-radius: 6px; padding: 6px 10px; font: inherit; }
.results { width: 100%; border-collapse: collapse; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; }
.results th { text-align: left; font-size: 0.75rem; text-transform: uppercase; color: #6b7280; padding: 10px; border-bottom: 1px solid #e5e7eb; }
.results td { padding: 10px; border-bottom: 1px solid #f3f4f6; vertical-align: top; }
.badge { padding: 2px 8px; border-radius: 999px; font-size: 0.8rem; white-space: nowrap; }
.badge.passed { background: #dcfce7; color: #166534; }
.badge.failed { background: #fee2e2; color: #991b1b; }
.badge.skipped { background: #fef9c3; color: #854d0e; }
.badge.timed-out { background: #ffedd5; color: #9a3412; }
.badge.interrupted { background: #f3e8ff; color: #6b21a8; }
.badge.unknown { background: #f3f4f6; color: #374151; }
.test .title { font-weight: 600; }
.test .suite { color: #6b7280; font-size: 0.85rem; }
.test .location { color: #9ca3af; font-size: 0.8rem; font-family: ui-monospace, monospace; }
.error { background: #fef2f2; border: 1px solid #fecaca; border-radius: 6px; padding: 8px; font-size: 0.8rem; overflow-x: auto; white-space: pre-wrap; }
.steps summary { cursor: pointer; color: #3b82f6; font-size: 0.85rem; }
.steps ul { list-style: none; margin: 6px 0; padding-left: 12px; }
.step { font-size: 0.85rem; padding: 2px 0; }
.step .category { color: #6b7280; font-family: ui-monospace, monospace; font-size: 0.75rem; }
.step .duration { color: #9ca3af; }
.step-error > .category, .step-error { color: #991b1b; }
.annotations { margin-top: 6px; }
.annotation { background: #eff6ff; color: #1d4ed8; border-radius: 4px; padding: 2px 6px; font-size: 0.75rem; margin-right: 6px; }
.project { white-space: nowrap; }
.empty td { text-align: center; color: #6b7280; padding: 32px; }
tr.hidden { display: none; }
`

// reportScript implements the combined client-side filtering: a row stays
// visible only if it passes the status filter, the project filter, and the
// free-text search. Visibility is recomputed from scratch for every row on
// each change; there is no incremental state beyond the three filter values.
const reportScript = `
var statusFilter = 'all';
var projectFilter = 'all';
var query = '';

function applyFilters() {
  var rows = document.querySelectorAll('#rows tr.row');
  rows.forEach(function (row) {
    var visible =
      (statusFilter === 'all' || row.dataset.status === statusFilter) &&
      (projectFilter === 'all' || row.dataset.project === projectFilter) &&
      (query === '' || row.textContent.toLowerCase().indexOf(query) !== -1);
    row.classList.toggle('hidden', !visible);
  });
}

function setStatusFilter(status) {
  statusFilter = status;
  document.querySelectorAll('.filter').forEach(function (button) {
    button.classList.toggle('active', button.dataset.status === status);
  });
  applyFilters();
}

function toggleProject(project) {
  projectFilter = projectFilter === project ? 'all' : project;
  document.querySelectorAll('.project-card').forEach(function (card) {
    card.classList.toggle('active', card.dataset.project === projectFilter);
  });
  applyFilters();
}

function setSearch(value) {
  query = value.toLowerCase();
  applyFilters();
}
`
