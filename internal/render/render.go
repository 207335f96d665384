// Package render turns a result set into table rows. It knows nothing about the
// terminal; the TUI and the list command both draw from the rows built here.
package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
)

// Placeholder is shown instead of rows when a page has no records.
const Placeholder = "No records found"

// Column describes one table column.
type Column struct {
	Title    string
	Sortable bool
	Width    int // preferred width in the TUI
}

// Columns are the table columns in display order.
var Columns = []Column{
	{Title: "Timestamp", Sortable: true, Width: 19},
	{Title: "Status Code", Sortable: true, Width: 13},
	{Title: "IP", Width: 15},
	{Title: "Authorization", Width: 14},
	{Title: "Path", Width: 22},
	{Title: "Method", Width: 7},
	{Title: "Payload", Width: 24},
	{Title: "Message", Width: 28},
	{Title: "Count", Width: 5},
	{Title: "Stack Trace", Width: 28},
	{Title: "Controller", Width: 16},
	{Title: "Handler", Width: 14},
}

// Row is one rendered table row. A placeholder row has a single cell and spans
// Span columns.
type Row struct {
	Cells []string
	Span  int
}

// IsPlaceholder reports whether the row is the empty-page placeholder.
func (r Row) IsPlaceholder() bool {
	return r.Span > 1
}

// Options control cell formatting.
type Options struct {
	TimeFormat   string
	Location     *time.Location
	MaxCellWidth int // 0 = no truncation
}

func (o Options) withDefaults() Options {
	if o.TimeFormat == "" {
		o.TimeFormat = models.DefaultTimeFormat
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Body builds one row per record, or a single placeholder row spanning every
// column when there are none.
func Body(records []models.LogRecord, opts Options) []Row {
	if len(records) == 0 {
		return []Row{{Cells: []string{Placeholder}, Span: len(Columns)}}
	}
	opts = opts.withDefaults()
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{Cells: Cells(rec, opts)})
	}
	return rows
}

// Cells formats a record into one string per column.
func Cells(rec models.LogRecord, opts Options) []string {
	opts = opts.withDefaults()
	cells := []string{
		FormatTimestamp(rec, opts),
		rec.StatusCode.String(),
		rec.IP,
		rec.Authorization,
		rec.Path,
		rec.Method,
		rec.Payload.JSON(),
		rec.Message,
		rec.Count.String(),
		rec.Stack.JSON(),
		rec.ControllerName,
		rec.HandlerName,
	}
	for i, c := range cells {
		cells[i] = flatten(c, opts.MaxCellWidth)
	}
	return cells
}

// FormatTimestamp renders the record time in the configured zone and layout.
// A timestamp that cannot be parsed is shown as received.
func FormatTimestamp(rec models.LogRecord, opts Options) string {
	opts = opts.withDefaults()
	t, ok := rec.Time()
	if !ok {
		return rec.Timestamp.String()
	}
	return t.In(opts.Location).Format(opts.TimeFormat)
}

func flatten(s string, width int) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if width > 0 {
		s = ansi.Truncate(s, width, "…")
	}
	return s
}

// Headers returns the column titles, marking the active sort column with its
// direction.
func Headers(sort models.SortState) []string {
	headers := make([]string, len(Columns))
	for i, col := range Columns {
		headers[i] = col.Title
		if col.Sortable && query.SortKey(col.Title) == sort.SortBy {
			headers[i] += " " + SortIndicator(sort.SortOrder)
		}
	}
	return headers
}

// SortIndicator is the arrow for a sort direction.
func SortIndicator(order models.SortOrder) string {
	if order == models.SortAsc {
		return "▲"
	}
	return "▼"
}

// HeaderAt maps a horizontal offset within the header row to a column index.
// widths are the rendered column widths and pad the horizontal padding around
// each cell.
func HeaderAt(x int, widths []int, pad int) (int, bool) {
	if x < 0 {
		return 0, false
	}
	left := 0
	for i, w := range widths {
		right := left + w + 2*pad
		if x < right {
			return i, true
		}
		left = right
	}
	return 0, false
}
