package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/render"
)

const (
	cellPadding    = 1
	minColumnWidth = 3
)

// growColumns receive any width left over once every column has its
// preferred width: Payload, Message and Stack Trace.
var growColumns = []int{6, 7, 9}

// LogTable wraps the bubbles table with the exception-log columns.
type LogTable struct {
	table  table.Model
	widths []int
	sort   models.SortState
	empty  bool
	width  int
	height int
}

// NewLogTable creates a table with the preferred column widths.
func NewLogTable(sort models.SortState) *LogTable {
	t := &LogTable{
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
		),
		sort:  sort,
		empty: true,
	}
	t.widths = fitWidths(0)
	t.table.SetColumns(t.columns())
	return t
}

// SetSize fits the columns to width and the body to height lines.
func (t *LogTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.widths = fitWidths(width)
	t.table.SetColumns(t.columns())
	t.table.SetHeight(max(height, 1))
	t.table.SetWidth(width)
}

// SetSort updates the header sort indicator.
func (t *LogTable) SetSort(sort models.SortState) {
	t.sort = sort
	t.table.SetColumns(t.columns())
}

// SetRows replaces the body. The selection is kept when it still points at a
// row and moves to the first row otherwise. A placeholder row clears the table
// and is drawn across every column instead.
func (t *LogTable) SetRows(rows []render.Row) {
	t.empty = len(rows) == 0 || rows[0].IsPlaceholder()
	if t.empty {
		t.table.SetRows(nil)
		return
	}
	tr := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tr = append(tr, table.Row(r.Cells))
	}
	t.table.SetRows(tr)
	if c := t.table.Cursor(); c < 0 || c >= len(tr) {
		t.table.SetCursor(0)
	}
}

// Cursor returns the selected row index, or -1 when the table is empty.
func (t *LogTable) Cursor() int {
	if t.empty {
		return -1
	}
	return t.table.Cursor()
}

// MoveUp moves the selection up.
func (t *LogTable) MoveUp() { t.table.MoveUp(1) }

// MoveDown moves the selection down.
func (t *LogTable) MoveDown() { t.table.MoveDown(1) }

// ColumnAt maps an x offset on the header row to a column index.
func (t *LogTable) ColumnAt(x int) (int, bool) {
	return render.HeaderAt(x, t.widths, cellPadding)
}

// Widths returns the rendered column widths.
func (t *LogTable) Widths() []int {
	return t.widths
}

// View renders the header and body.
func (t *LogTable) View() string {
	view := t.table.View()
	if t.empty {
		headerLines := lipgloss.Height(tableHeaderStyle.Render("x"))
		lines := strings.Split(view, "\n")
		if len(lines) > headerLines {
			lines = lines[:headerLines]
		}
		lines = append(lines, t.placeholder())
		view = strings.Join(lines, "\n")
	}
	return view
}

func (t *LogTable) placeholder() string {
	return placeholderStyle.
		Width(totalWidth(t.widths)).
		Align(lipgloss.Center).
		Render(render.Placeholder)
}

func (t *LogTable) columns() []table.Column {
	headers := render.Headers(t.sort)
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: t.widths[i]}
	}
	return cols
}

// fitWidths shrinks the preferred widths proportionally to fit total columns,
// or hands the spare room to the wide free-text columns. total <= 0 keeps the
// preferred widths.
func fitWidths(total int) []int {
	widths := make([]int, len(render.Columns))
	preferred := 0
	for i, c := range render.Columns {
		widths[i] = c.Width
		preferred += c.Width
	}
	if total <= 0 {
		return widths
	}

	avail := total - 2*cellPadding*len(widths)
	if avail < preferred {
		for i, c := range render.Columns {
			widths[i] = max(c.Width*avail/preferred, minColumnWidth)
		}
		return widths
	}

	spare := avail - preferred
	for i, col := range growColumns {
		share := spare / len(growColumns)
		if i == len(growColumns)-1 {
			share = spare - share*(len(growColumns)-1)
		}
		widths[col] += share
	}
	return widths
}

func totalWidth(widths []int) int {
	w := 0
	for _, c := range widths {
		w += c + 2*cellPadding
	}
	return w
}
