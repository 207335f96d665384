package models

import (
	"bytes"
	"strconv"
	"time"

	"github.com/segmentio/encoding/json"
)

// Value holds a server-provided JSON value verbatim. The viewer never interprets
// these fields beyond turning them into display text.
type Value []byte

// UnmarshalJSON keeps a copy of the raw value.
func (v *Value) UnmarshalJSON(b []byte) error {
	*v = append((*v)[:0], b...)
	return nil
}

// MarshalJSON writes the raw value back out, or null when nothing was received.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// IsNull reports whether the value was absent or JSON null.
func (v Value) IsNull() bool {
	return len(v) == 0 || string(v) == "null"
}

// String renders the value for a table cell. JSON strings are unquoted, null is
// empty, and anything else is compact JSON.
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return v.JSON()
}

// JSON renders the value as compact JSON text. An absent value renders empty.
func (v Value) JSON() string {
	if len(v) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}

// Indented renders the value as indented JSON for the detail view.
func (v Value) Indented() string {
	if len(v) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, v, "", "  "); err != nil {
		return string(v)
	}
	return buf.String()
}

// Timestamp layouts accepted from the server, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LogRecord is one exception-log entry as returned by the backend.
type LogRecord struct {
	ID             Value  `json:"id"`
	Timestamp      Value  `json:"timestamp"`
	StatusCode     Value  `json:"statusCode"`
	IP             string `json:"ip"`
	Authorization  string `json:"authorization"`
	Path           string `json:"path"`
	Method         string `json:"method"`
	Payload        Value  `json:"payload"`
	Message        string `json:"message"`
	Count          Value  `json:"count"`
	Stack          Value  `json:"stack"`
	ControllerName string `json:"controllerName"`
	HandlerName    string `json:"handlerName"`
}

// Time parses the record timestamp. Strings are tried against the known layouts
// and numbers are read as Unix milliseconds.
func (r LogRecord) Time() (time.Time, bool) {
	raw := r.Timestamp.String()
	if raw == "" {
		return time.Time{}, false
	}
	if r.Timestamp[0] != '"' {
		ms, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResultSet is one page of matching records plus the total match count across
// all pages. It is replaced wholesale on every fetch.
type ResultSet struct {
	Data  []LogRecord `json:"data"`
	Total int         `json:"total"`
}
