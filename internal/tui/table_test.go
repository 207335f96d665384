package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/render"
)

func TestFitWidths(t *testing.T) {
	preferred := fitWidths(0)
	for i, c := range render.Columns {
		assert.Equal(t, c.Width, preferred[i])
	}

	narrow := fitWidths(120)
	assert.LessOrEqual(t, totalWidth(narrow), 120+len(narrow)*minColumnWidth)
	for _, w := range narrow {
		assert.GreaterOrEqual(t, w, minColumnWidth)
	}

	wide := fitWidths(400)
	assert.Equal(t, 400, totalWidth(wide))
	assert.Equal(t, render.Columns[0].Width, wide[0])
	assert.Greater(t, wide[7], render.Columns[7].Width)
}

func TestLogTablePlaceholder(t *testing.T) {
	lt := NewLogTable(models.SortState{SortBy: models.SortTimestamp, SortOrder: models.SortDesc})
	lt.SetSize(200, 10)

	lt.SetRows(render.Body(nil, render.Options{}))
	assert.Equal(t, -1, lt.Cursor())
	assert.Contains(t, lt.View(), render.Placeholder)
	assert.Contains(t, lt.View(), "Timestamp ▼")

	lt.SetRows(render.Body([]models.LogRecord{{Message: "boom"}}, render.Options{}))
	assert.Equal(t, 0, lt.Cursor())
	assert.NotContains(t, lt.View(), render.Placeholder)
}

func TestFilterBarCycleWraps(t *testing.T) {
	fb := NewFilterBar()

	assert.Equal(t, "503", fb.CycleStatus(-1))
	assert.Equal(t, "", fb.CycleStatus(1))
	assert.Equal(t, "GET", fb.CycleMethod(1))

	fb.Sync(models.FilterState{Search: "x", StatusCode: "404", Method: "DELETE"})
	assert.Equal(t, "500", fb.CycleStatus(1))
	assert.Equal(t, "PATCH", fb.CycleMethod(1))
	assert.Contains(t, fb.View(false), "x")
}

func TestFilterBarLabels(t *testing.T) {
	fb := NewFilterBar()
	view := fb.View(false)
	assert.Contains(t, view, searchPlaceholder)
	assert.Contains(t, view, anyStatusLabel)
	assert.Contains(t, view, anyMethodLabel)
}
