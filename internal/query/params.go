package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list. Unlike url.Values it keeps insertion
// order when encoded.
type Params []Param

// Encode renders the parameters as a URL query string in insertion order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Values converts the parameters to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, kv := range p {
		v.Add(kv.Key, kv.Value)
	}
	return v
}

type paramBuilder struct {
	params Params
}

// add appends key=value only when the value is meaningful.
func (b *paramBuilder) add(key, value string) {
	if !meaningful(value) {
		return
	}
	b.params = append(b.params, Param{Key: key, Value: value})
}

func (b *paramBuilder) addInt(key string, value int) {
	b.add(key, strconv.Itoa(value))
}

func meaningful(value string) bool {
	return value != ""
}

// Params builds the request parameters for the state. Empty filter values are
// left out entirely; the order is search, statusCode, method, page, limit,
// sortBy, sortOrder.
func (s State) Params() Params {
	var b paramBuilder
	b.add("search", s.Filters.Search)
	b.add("statusCode", s.Filters.StatusCode)
	b.add("method", s.Filters.Method)
	b.addInt("page", s.Pagination.Page)
	b.addInt("limit", s.Pagination.Limit)
	b.add("sortBy", s.Sort.SortBy)
	b.add("sortOrder", string(s.Sort.SortOrder))
	return b.params
}
