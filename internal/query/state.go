// Package query holds the filter, sort, and pagination state of the log view and
// turns it into request parameters.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/watchfire-io/exlogs/internal/models"
)

var (
	// ErrUnknownFilter is returned when a filter field name is not recognized.
	ErrUnknownFilter = errors.New("unknown filter field")
	// ErrNotSortable is returned when a column label cannot be sorted on.
	ErrNotSortable = errors.New("column is not sortable")
	// ErrInvalidLimit is returned for a non-positive page size.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// PageSizes are the page sizes CycleLimit steps through.
var PageSizes = []int{10, 25, 50, 100}

// State is the complete query snapshot: filters, pagination, and sort.
// The zero value is not usable; create one with New.
type State struct {
	Filters    models.FilterState
	Pagination models.PaginationState
	Sort       models.SortState
}

// New returns the state of a freshly mounted view: no filters, page 1, the given
// page size, and newest records first.
func New(limit int) State {
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	return State{
		Pagination: models.PaginationState{Page: 1, Limit: limit},
		Sort: models.SortState{
			SortBy:    models.SortTimestamp,
			SortOrder: models.SortDesc,
		},
	}
}

// UpdateFilter sets the named filter field and resets the page to 1.
// Values are not validated.
func (s *State) UpdateFilter(field, value string) error {
	switch field {
	case models.FieldSearch:
		s.Filters.Search = value
	case models.FieldStatusCode:
		s.Filters.StatusCode = value
	case models.FieldMethod:
		s.Filters.Method = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, field)
	}
	s.Pagination.Page = 1
	return nil
}

// SortKey maps a header label to its canonical sort key: lowercase with spaces removed.
func SortKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "")
}

// IsSortable reports whether a header label names a sortable field.
func IsSortable(label string) bool {
	switch SortKey(label) {
	case models.SortTimestamp, models.SortStatusCode:
		return true
	}
	return false
}

// ToggleSort applies a header click. Clicking the active field flips its order;
// clicking another sortable field makes it active in ascending order.
func (s *State) ToggleSort(label string) error {
	if !IsSortable(label) {
		return fmt.Errorf("%w: %q", ErrNotSortable, label)
	}
	key := SortKey(label)
	if s.Sort.SortBy == key {
		s.Sort.SortOrder = s.Sort.SortOrder.Toggle()
		return nil
	}
	s.Sort = models.SortState{SortBy: key, SortOrder: models.SortAsc}
	return nil
}

// SetPage moves to page n, clamped to 1.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Pagination.Page = n
}

// NextPage advances one page unless already on the last one. It reports whether
// the page changed.
func (s *State) NextPage(totalPages int) bool {
	if s.Pagination.Page >= totalPages {
		return false
	}
	s.Pagination.Page++
	return true
}

// PrevPage goes back one page unless already on the first one.
func (s *State) PrevPage() bool {
	if s.Pagination.Page <= 1 {
		return false
	}
	s.Pagination.Page--
	return true
}

// FirstPage jumps to page 1.
func (s *State) FirstPage() bool {
	if s.Pagination.Page == 1 {
		return false
	}
	s.Pagination.Page = 1
	return true
}

// LastPage jumps to the last page. With no results there is no last page to go to.
func (s *State) LastPage(totalPages int) bool {
	if totalPages < 1 || s.Pagination.Page == totalPages {
		return false
	}
	s.Pagination.Page = totalPages
	return true
}

// SetLimit changes the page size and resets the page to 1.
func (s *State) SetLimit(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	s.Pagination.Limit = n
	s.Pagination.Page = 1
	return nil
}

// CycleLimit steps to the next entry of PageSizes, wrapping around. A page size
// not in the list moves to the first entry.
func (s *State) CycleLimit() {
	next := PageSizes[0]
	for i, n := range PageSizes {
		if n == s.Pagination.Limit {
			next = PageSizes[(i+1)%len(PageSizes)]
			break
		}
	}
	_ = s.SetLimit(next)
}

// TotalPages is ceil(total / limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
