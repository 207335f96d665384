package tui

import (
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
)

// LogsFetchedMsg carries a page of records for the request numbered Seq.
type LogsFetchedMsg struct {
	Seq    uint64
	State  query.State
	Result *models.ResultSet
}

// FetchFailedMsg reports a failed request numbered Seq.
type FetchFailedMsg struct {
	Seq   uint64
	State query.State
	Err   error
}

// SettingsChangedMsg carries settings re-read after the settings file changed.
type SettingsChangedMsg struct {
	Settings *models.Settings
	Err      error
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}
