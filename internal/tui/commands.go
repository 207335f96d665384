package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/exlogs/internal/client"
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
)

// Fetcher is the part of the API client the view depends on.
type Fetcher interface {
	Fetch(ctx context.Context, s query.State) (*models.ResultSet, error)
}

var _ Fetcher = (*client.Client)(nil)

// fetchLogsCmd requests one page for a snapshot of the query state. The result
// is tagged with seq so Update can drop responses that were overtaken.
func fetchLogsCmd(ctx context.Context, f Fetcher, s query.State, seq uint64) tea.Cmd {
	return func() tea.Msg {
		rs, err := f.Fetch(ctx, s)
		if err != nil {
			return FetchFailedMsg{Seq: seq, State: s, Err: err}
		}
		return LogsFetchedMsg{Seq: seq, State: s, Result: rs}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
