package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/exlogs/internal/models"
)

func TestNewDefaults(t *testing.T) {
	s := New(0)
	assert.Equal(t, models.FilterState{}, s.Filters)
	assert.Equal(t, models.PaginationState{Page: 1, Limit: 10}, s.Pagination)
	assert.Equal(t, models.SortState{SortBy: "timestamp", SortOrder: models.SortDesc}, s.Sort)
}

func TestParamsOmitEmptyFilters(t *testing.T) {
	s := New(10)
	require.NoError(t, s.UpdateFilter(models.FieldStatusCode, "404"))

	assert.Equal(t, "statusCode=404&page=1&limit=10&sortBy=timestamp&sortOrder=DESC", s.Params().Encode())

	for _, key := range []string{"search", "method"} {
		_, ok := s.Params().Get(key)
		assert.False(t, ok, "%s should be omitted", key)
	}
}

func TestParamsAllFilters(t *testing.T) {
	s := New(25)
	require.NoError(t, s.UpdateFilter(models.FieldSearch, "null pointer"))
	require.NoError(t, s.UpdateFilter(models.FieldMethod, "POST"))

	assert.Equal(t,
		"search=null+pointer&method=POST&page=1&limit=25&sortBy=timestamp&sortOrder=DESC",
		s.Params().Encode())
	assert.Equal(t, "null pointer", s.Params().Values().Get("search"))
}

func TestClearingFilterOmitsIt(t *testing.T) {
	s := New(10)
	require.NoError(t, s.UpdateFilter(models.FieldMethod, "GET"))
	require.NoError(t, s.UpdateFilter(models.FieldMethod, ""))

	_, ok := s.Params().Get("method")
	assert.False(t, ok)
}

func TestUpdateFilterResetsPage(t *testing.T) {
	for _, field := range []string{models.FieldSearch, models.FieldStatusCode, models.FieldMethod} {
		t.Run(field, func(t *testing.T) {
			s := New(10)
			s.SetPage(7)
			require.NoError(t, s.UpdateFilter(field, "x"))
			assert.Equal(t, 1, s.Pagination.Page)
		})
	}
}

func TestSearchKeystrokeOnPageThree(t *testing.T) {
	s := New(10)
	require.NoError(t, s.UpdateFilter(models.FieldSearch, "timeou"))
	require.NoError(t, s.ToggleSort("Status Code"))
	s.SetPage(3)
	before := s

	require.NoError(t, s.UpdateFilter(models.FieldSearch, "timeout"))

	assert.Equal(t, 1, s.Pagination.Page)
	assert.Equal(t, "timeout", s.Filters.Search)
	assert.Equal(t, before.Pagination.Limit, s.Pagination.Limit)
	assert.Equal(t, before.Sort, s.Sort)
	assert.Equal(t, before.Filters.StatusCode, s.Filters.StatusCode)
	assert.Equal(t, before.Filters.Method, s.Filters.Method)
	assert.Equal(t, "search=timeout&page=1&limit=10&sortBy=statuscode&sortOrder=ASC", s.Params().Encode())
}

func TestUpdateFilterUnknownField(t *testing.T) {
	s := New(10)
	s.SetPage(4)
	err := s.UpdateFilter("path", "/api")
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.Equal(t, 4, s.Pagination.Page)
}

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name      string
		start     models.SortState
		label     string
		wantBy    string
		wantOrder models.SortOrder
	}{
		{
			name:      "active column flips desc to asc",
			start:     models.SortState{SortBy: "timestamp", SortOrder: models.SortDesc},
			label:     "Timestamp",
			wantBy:    "timestamp",
			wantOrder: models.SortAsc,
		},
		{
			name:      "active column flips asc to desc",
			start:     models.SortState{SortBy: "statuscode", SortOrder: models.SortAsc},
			label:     "Status Code",
			wantBy:    "statuscode",
			wantOrder: models.SortDesc,
		},
		{
			name:      "other column switches and resets to asc",
			start:     models.SortState{SortBy: "timestamp", SortOrder: models.SortDesc},
			label:     "Status Code",
			wantBy:    "statuscode",
			wantOrder: models.SortAsc,
		},
		{
			name:      "labels match case-insensitively",
			start:     models.SortState{SortBy: "statuscode", SortOrder: models.SortDesc},
			label:     "TIMESTAMP",
			wantBy:    "timestamp",
			wantOrder: models.SortAsc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(10)
			s.Sort = tt.start
			require.NoError(t, s.ToggleSort(tt.label))
			assert.Equal(t, tt.wantBy, s.Sort.SortBy)
			assert.Equal(t, tt.wantOrder, s.Sort.SortOrder)
		})
	}
}

func TestToggleSortDoesNotResetPage(t *testing.T) {
	s := New(10)
	s.SetPage(2)
	require.NoError(t, s.ToggleSort("Timestamp"))
	assert.Equal(t, 2, s.Pagination.Page)
}

func TestToggleSortRejectsStaticColumn(t *testing.T) {
	s := New(10)
	err := s.ToggleSort("Message")
	assert.ErrorIs(t, err, ErrNotSortable)
	assert.Equal(t, models.SortState{SortBy: "timestamp", SortOrder: models.SortDesc}, s.Sort)
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, "statuscode", SortKey("Status Code"))
	assert.Equal(t, "timestamp", SortKey("Timestamp"))
	assert.True(t, IsSortable("status code"))
	assert.False(t, IsSortable("Stack Trace"))
}

func TestPaging(t *testing.T) {
	s := New(10)

	assert.False(t, s.PrevPage())
	assert.True(t, s.NextPage(3))
	assert.True(t, s.NextPage(3))
	assert.False(t, s.NextPage(3))
	assert.Equal(t, 3, s.Pagination.Page)

	assert.True(t, s.FirstPage())
	assert.Equal(t, 1, s.Pagination.Page)
	assert.True(t, s.LastPage(3))
	assert.Equal(t, 3, s.Pagination.Page)
	assert.False(t, s.LastPage(0))

	s.SetPage(-2)
	assert.Equal(t, 1, s.Pagination.Page)
}

func TestSetLimit(t *testing.T) {
	s := New(10)
	s.SetPage(5)
	require.NoError(t, s.SetLimit(50))
	assert.Equal(t, 50, s.Pagination.Limit)
	assert.Equal(t, 1, s.Pagination.Page)

	assert.ErrorIs(t, s.SetLimit(0), ErrInvalidLimit)
	assert.Equal(t, 50, s.Pagination.Limit)
}

func TestCycleLimit(t *testing.T) {
	s := New(10)
	var seen []int
	for range PageSizes {
		s.CycleLimit()
		seen = append(seen, s.Pagination.Limit)
	}
	assert.Equal(t, []int{25, 50, 100, 10}, seen)

	s = New(7)
	s.CycleLimit()
	assert.Equal(t, 10, s.Pagination.Limit)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 25, 4},
		{100, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "TotalPages(%d, %d)", tt.total, tt.limit)
	}
}
