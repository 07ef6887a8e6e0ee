package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "tally.dev/pkg/tally/internal/model"
	"tally.dev/pkg/tally/internal/render"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output   io.Writer
	fallback *SimpleUI
}

// NewTUI creates a new TUI. Non-interactive output falls back to simple.
func NewTUI(output io.Writer, fallback *SimpleUI) *TUI {
	return &TUI{output: output, fallback: fallback}
}

// DisplaySummary delegates to the simple renderer; the summary table needs
// no interaction.
func (t *TUI) DisplaySummary(name string, summary m.RunSummary) error {
	return t.fallback.DisplaySummary(name, summary)
}

// Browse opens the interactive results browser: status filter cycling,
// live text search, and scrolling over the record list. The filter
// semantics mirror the HTML report's client-side filters.
func (t *TUI) Browse(title string, summary m.RunSummary, records []m.ResultRecord) error {
	if len(records) == 0 {
		return t.fallback.Browse(title, summary, records)
	}

	model := newBrowseModel(title, summary, records)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// statusFilters are the cycling order for the status filter key.
var statusFilters = []string{"all", "passed", "failed", "skipped"}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	statusStyles  = map[m.Status]lipgloss.Style{
		m.StatusPassed:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		m.StatusFailed:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		m.StatusSkipped:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		m.StatusTimedOut:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		m.StatusInterrupted: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
)

// browseModel is the Bubble Tea model for the results browser.
type browseModel struct {
	title   string
	summary m.RunSummary
	records []m.ResultRecord

	search       textinput.Model
	searching    bool
	statusFilter int
	cursor       int
	offset       int
	width        int
	height       int
	quitting     bool
}

func newBrowseModel(title string, summary m.RunSummary, records []m.ResultRecord) browseModel {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/"
	search.CharLimit = 80

	return browseModel{
		title:   title,
		summary: summary,
		records: records,
		search:  search,
	}
}

func (bm browseModel) Init() tea.Cmd {
	return nil
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height

		return bm, nil

	case tea.KeyMsg:
		return bm.handleKeyPress(msg)
	}

	return bm, nil
}

func (bm browseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if bm.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			bm.searching = false
			bm.search.Blur()
			bm.clampCursor()

			return bm, nil
		default:
		}

		var cmd tea.Cmd
		bm.search, cmd = bm.search.Update(msg)
		bm.clampCursor()

		return bm, cmd
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		bm.quitting = true
		return bm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		bm.quitting = true
		return bm, tea.Quit

	case "/":
		bm.searching = true
		return bm, bm.search.Focus()

	case "tab", "f":
		bm.statusFilter = (bm.statusFilter + 1) % len(statusFilters)
		bm.cursor = 0
		bm.offset = 0

		return bm, nil

	case "down", "j":
		bm.cursor++
		bm.clampCursor()

		return bm, nil

	case "up", "k":
		bm.cursor--
		bm.clampCursor()

		return bm, nil

	case "g", "home":
		bm.cursor = 0
		bm.offset = 0

		return bm, nil

	case "G", "end":
		bm.cursor = len(bm.visible()) - 1
		bm.clampCursor()

		return bm, nil
	}

	return bm, nil
}

// visible applies the current status filter and search query, mirroring
// the report's row-visibility rule.
func (bm browseModel) visible() []m.ResultRecord {
	status := statusFilters[bm.statusFilter]
	query := strings.ToLower(bm.search.Value())

	var out []m.ResultRecord

	for _, record := range bm.records {
		if status != "all" && string(record.Status) != status {
			continue
		}

		if query != "" {
			haystack := strings.ToLower(record.Title + " " + record.File + " " + record.Project + " " + record.Suite)
			if !strings.Contains(haystack, query) {
				continue
			}
		}

		out = append(out, record)
	}

	return out
}

func (bm *browseModel) clampCursor() {
	visible := len(bm.visible())

	if bm.cursor >= visible {
		bm.cursor = visible - 1
	}

	if bm.cursor < 0 {
		bm.cursor = 0
	}

	perPage := bm.itemsPerPage()

	if bm.cursor < bm.offset {
		bm.offset = bm.cursor
	}

	if bm.cursor >= bm.offset+perPage {
		bm.offset = bm.cursor - perPage + 1
	}

	if bm.offset < 0 {
		bm.offset = 0
	}
}

// itemsPerPage calculates how many rows fit on screen after the header,
// filter line, search line, and help footer.
func (bm browseModel) itemsPerPage() int {
	if bm.height == 0 {
		return 10
	}

	reserved := 7

	available := bm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (bm browseModel) View() string {
	if bm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %d tests · %s%% passed", bm.title, bm.summary.Total, bm.summary.PassRate)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "  filter: %s   %s\n\n", statusFilters[bm.statusFilter], bm.search.View())

	visible := bm.visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("  no matching tests") + "\n")
	}

	end := bm.offset + bm.itemsPerPage()
	if end > len(visible) {
		end = len(visible)
	}

	for i := bm.offset; i < end; i++ {
		record := visible[i]

		style, ok := statusStyles[record.Status]
		if !ok {
			style = dimStyle
		}

		line := fmt.Sprintf("  %s %-50.50s %-12.12s %8s",
			render.StatusIcon(record.Status), record.Title, record.Project,
			render.FormatDuration(record.Duration))

		if i == bm.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = style.Render(line)
		}

		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  j/k move · tab filter · / search · q quit") + "\n")

	return b.String()
}
