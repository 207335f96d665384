package models

// Filter field names as they appear on the wire.
const (
	FieldSearch     = "search"
	FieldStatusCode = "statusCode"
	FieldMethod     = "method"
)

// StatusCodes lists the selectable status code filters. The empty value means any.
var StatusCodes = []string{"", "200", "201", "400", "401", "403", "404", "500", "503"}

// Methods lists the selectable HTTP method filters. The empty value means any.
var Methods = []string{"", "GET", "POST", "PUT", "DELETE", "PATCH"}

// SortOrder is the direction of the active sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Sortable field keys.
const (
	SortTimestamp  = "timestamp"
	SortStatusCode = "statuscode"
)

// FilterState holds the user-chosen predicates narrowing the request.
type FilterState struct {
	Search     string `json:"search" yaml:"search"`
	StatusCode string `json:"statusCode" yaml:"status_code"`
	Method     string `json:"method" yaml:"method"`
}

// PaginationState selects which slice of matching records is requested.
type PaginationState struct {
	Page  int `json:"page" yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
}

// SortState is the field and direction used to order requested records.
type SortState struct {
	SortBy    string    `json:"sortBy" yaml:"sort_by"`
	SortOrder SortOrder `json:"sortOrder" yaml:"sort_order"`
}
