package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/exlogs/internal/models"
)

// Filter bar field positions.
const (
	fieldSearch = iota
	fieldStatus
	fieldMethod
	fieldCount
)

// Labels shown for the empty choice of each select.
const (
	searchPlaceholder = "Search text"
	anyStatusLabel    = "All Status Codes"
	anyMethodLabel    = "All Methods"
)

// FilterBar renders and edits the search input and the two selects.
type FilterBar struct {
	cursor    int
	input     textinput.Model
	statusIdx int
	methodIdx int
	width     int
}

// NewFilterBar creates a filter bar with every filter cleared.
func NewFilterBar() *FilterBar {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Width = 30
	return &FilterBar{input: ti}
}

// SetWidth updates the available width.
func (f *FilterBar) SetWidth(width int) {
	f.width = width
	w := width - lipgloss.Width(anyStatusLabel) - lipgloss.Width(anyMethodLabel) - 40
	if w < 10 {
		w = 10
	}
	f.input.Width = w
}

// Cursor returns the focused field.
func (f *FilterBar) Cursor() int {
	return f.cursor
}

// Focus moves the cursor to field and focuses the search input when needed.
func (f *FilterBar) Focus(field int) tea.Cmd {
	f.cursor = field
	if field == fieldSearch {
		f.input.CursorEnd()
		return f.input.Focus()
	}
	f.input.Blur()
	return nil
}

// Blur drops focus from the search input.
func (f *FilterBar) Blur() {
	f.input.Blur()
}

// Next advances the cursor. It returns false when the cursor walked off the
// last field.
func (f *FilterBar) Next() (tea.Cmd, bool) {
	if f.cursor+1 >= fieldCount {
		f.Blur()
		return nil, false
	}
	return f.Focus(f.cursor + 1), true
}

// Prev moves the cursor back. It returns false when the cursor walked off the
// first field.
func (f *FilterBar) Prev() (tea.Cmd, bool) {
	if f.cursor == 0 {
		f.Blur()
		return nil, false
	}
	return f.Focus(f.cursor - 1), true
}

// Cycle steps the select under the cursor by delta and returns the filter
// field and its new value. ok is false when the cursor is on the search input.
func (f *FilterBar) Cycle(delta int) (field, value string, ok bool) {
	switch f.cursor {
	case fieldStatus:
		return models.FieldStatusCode, f.CycleStatus(delta), true
	case fieldMethod:
		return models.FieldMethod, f.CycleMethod(delta), true
	}
	return "", "", false
}

// CycleStatus steps the status code select and returns the new value.
func (f *FilterBar) CycleStatus(delta int) string {
	f.statusIdx = wrap(f.statusIdx+delta, len(models.StatusCodes))
	return models.StatusCodes[f.statusIdx]
}

// CycleMethod steps the method select and returns the new value.
func (f *FilterBar) CycleMethod(delta int) string {
	f.methodIdx = wrap(f.methodIdx+delta, len(models.Methods))
	return models.Methods[f.methodIdx]
}

// UpdateInput forwards msg to the search input and reports whether its value
// changed.
func (f *FilterBar) UpdateInput(msg tea.Msg) (value string, changed bool, cmd tea.Cmd) {
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	value = f.input.Value()
	return value, value != before, cmd
}

// Sync makes the widgets reflect fs.
func (f *FilterBar) Sync(fs models.FilterState) {
	if f.input.Value() != fs.Search {
		f.input.SetValue(fs.Search)
	}
	f.statusIdx = indexOf(models.StatusCodes, fs.StatusCode)
	f.methodIdx = indexOf(models.Methods, fs.Method)
}

// View renders the bar on one line. focused highlights the field under the
// cursor.
func (f *FilterBar) View(focused bool) string {
	search := f.input.View()
	if !f.input.Focused() && f.input.Value() == "" {
		search = placeholderStyle.Render(searchPlaceholder)
	}

	parts := []string{
		f.field(focused, fieldSearch, "Search:", search),
		f.field(focused, fieldStatus, "Status:", selectValue(models.StatusCodes[f.statusIdx], anyStatusLabel)),
		f.field(focused, fieldMethod, "Method:", selectValue(models.Methods[f.methodIdx], anyMethodLabel)),
	}
	return " " + strings.Join(parts, "  ")
}

func (f *FilterBar) field(focused bool, idx int, label, value string) string {
	s := filterLabelStyle.Render(label) + " " + value
	if focused && idx == f.cursor {
		return filterCursorStyle.Render(s)
	}
	return s
}

func selectValue(value, anyLabel string) string {
	if value == "" {
		return filterValueStyle.Render(anyLabel)
	}
	return filterActiveValueStyle.Render(value)
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
