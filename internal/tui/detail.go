package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/render"
)

// DetailView shows one record with its payload and stack pretty-printed.
type DetailView struct {
	record   *models.LogRecord
	viewport viewport.Model
	width    int
	height   int
}

// NewDetailView creates an empty detail view.
func NewDetailView() *DetailView {
	return &DetailView{viewport: viewport.New(80, 24)}
}

// SetSize updates dimensions.
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = max(height-detailHeaderLines, 1)
}

const detailHeaderLines = 3

// Open shows rec.
func (d *DetailView) Open(rec models.LogRecord, opts render.Options) {
	d.record = &rec
	d.viewport.SetContent(detailContent(rec, opts))
	d.viewport.GotoTop()
}

// Close returns to the table.
func (d *DetailView) Close() {
	d.record = nil
}

// IsOpen reports whether a record is shown.
func (d *DetailView) IsOpen() bool {
	return d.record != nil
}

// Record returns the shown record, or nil.
func (d *DetailView) Record() *models.LogRecord {
	return d.record
}

// LineUp scrolls up one line.
func (d *DetailView) LineUp() { d.viewport.LineUp(1) }

// LineDown scrolls down one line.
func (d *DetailView) LineDown() { d.viewport.LineDown(1) }

// PageUp scrolls up half a screen.
func (d *DetailView) PageUp() { d.viewport.HalfViewUp() }

// PageDown scrolls down half a screen.
func (d *DetailView) PageDown() { d.viewport.HalfViewDown() }

// View renders the detail view.
func (d *DetailView) View() string {
	if d.record == nil {
		return ""
	}
	rec := d.record

	title := strings.TrimSpace(fmt.Sprintf("%s %s", rec.Method, rec.Path))
	if title == "" {
		title = "Exception"
	}
	code := rec.StatusCode.String()
	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render(title)
	if code != "" {
		header += "  " + statusCodeStyle(code).Bold(true).Render(code)
	}
	backHint := hintStyle.Render("Esc to go back · PgUp/PgDn to scroll")
	rule := hintStyle.Render(strings.Repeat("─", max(d.width, 1)))

	return header + "\n" + backHint + "\n" + rule + "\n" + d.viewport.View()
}

func detailContent(rec models.LogRecord, opts render.Options) string {
	fields := []struct {
		label string
		value string
	}{
		{"Timestamp", render.FormatTimestamp(rec, opts)},
		{"Status Code", rec.StatusCode.String()},
		{"Method", rec.Method},
		{"Path", rec.Path},
		{"IP", rec.IP},
		{"Authorization", rec.Authorization},
		{"Message", rec.Message},
		{"Count", rec.Count.String()},
		{"Controller", rec.ControllerName},
		{"Handler", rec.HandlerName},
		{"ID", rec.ID.String()},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(detailLabelStyle.Render(f.label+":") + " " + f.value + "\n")
	}

	b.WriteString("\n" + detailSectionStyle.Render("Payload") + "\n")
	b.WriteString(prettyValue(rec.Payload) + "\n")

	b.WriteString("\n" + detailSectionStyle.Render("Stack Trace") + "\n")
	b.WriteString(prettyValue(rec.Stack))

	return b.String()
}

// prettyValue renders strings with their line breaks intact and everything
// else as indented JSON.
func prettyValue(v models.Value) string {
	if v.IsNull() {
		return hintStyle.Render("(none)")
	}
	if len(v) > 0 && v[0] == '"' {
		return v.String()
	}
	return v.Indented()
}
