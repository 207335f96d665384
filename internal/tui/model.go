package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/watchfire-io/exlogs/internal/client"
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
	"github.com/watchfire-io/exlogs/internal/render"
)

// Focus targets.
const (
	focusTable = iota
	focusFilters
)

// Rows above the table: the title bar and the filter bar.
const tableTop = 2

// FetcherFactory builds a fetcher for a set of settings.
type FetcherFactory func(*models.Settings) (Fetcher, error)

func clientFactory(s *models.Settings) (Fetcher, error) {
	return client.FromSettings(s)
}

// Options configures a Model.
type Options struct {
	Settings   *models.Settings
	Fetcher    Fetcher
	NewFetcher FetcherFactory // nil = client.FromSettings
	Endpoint   string         // shown in the title bar
}

// Model is the root Bubbletea model for the TUI.
type Model struct {
	settings   *models.Settings
	fetcher    Fetcher
	newFetcher FetcherFactory
	endpoint   string
	renderOpts render.Options

	// Query and results
	state   query.State
	seq     *query.Sequencer
	records []models.LogRecord
	total   int

	// UI state
	focus         int
	activeOverlay int
	width         int
	height        int
	err           error

	// Child components
	filterBar *FilterBar
	logTable  *LogTable
	detail    *DetailView

	// Program reference for goroutine Send()
	program *programRef

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the initial TUI model: no filters, page 1, newest first.
func NewModel(opts Options, program *programRef) Model {
	settings := opts.Settings
	if settings == nil {
		settings = models.NewSettings()
	}
	newFetcher := opts.NewFetcher
	if newFetcher == nil {
		newFetcher = clientFactory
	}
	if program == nil {
		program = &programRef{}
	}

	state := query.New(settings.PageSize)
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		settings:   settings,
		fetcher:    opts.Fetcher,
		newFetcher: newFetcher,
		endpoint:   opts.Endpoint,
		renderOpts: renderOptions(settings),
		state:      state,
		seq:        &query.Sequencer{},
		filterBar:  NewFilterBar(),
		logTable:   NewLogTable(state.Sort),
		detail:     NewDetailView(),
		program:    program,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func renderOptions(s *models.Settings) render.Options {
	return render.Options{
		TimeFormat: s.TimeFormat,
		Location:   s.Location(),
	}
}

// Init fetches the first page.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// State returns the current query state.
func (m Model) State() query.State {
	return m.state
}

// Records returns the records on display.
func (m Model) Records() []models.LogRecord {
	return m.records
}

// Total returns the total record count reported by the last successful fetch.
func (m Model) Total() int {
	return m.total
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	// ── Fetch results ──────────────────────────────────────────────
	case LogsFetchedMsg:
		if !m.seq.IsLatest(msg.Seq) {
			log.Debug().
				Str("component", "tui").
				Str("operation", "fetch").
				Uint64("seq", msg.Seq).
				Uint64("latest", m.seq.Latest()).
				Msg("Discarding superseded response")
			return m, nil
		}
		m.applyResult(msg.Result)
		return m, nil

	case FetchFailedMsg:
		event := log.Error()
		if !m.seq.IsLatest(msg.Seq) {
			event = log.Debug()
		}
		event.
			Err(msg.Err).
			Str("component", "tui").
			Str("operation", "fetch").
			Uint64("seq", msg.Seq).
			Int("page", msg.State.Pagination.Page).
			Msg("Failed to fetch exception logs")
		return m, nil

	// ── Settings reload ────────────────────────────────────────────
	case SettingsChangedMsg:
		return m, m.applySettings(msg.Settings, msg.Err)

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// refresh issues one fetch for the current state. Every mutation of the query
// state ends with a call to refresh.
func (m *Model) refresh() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	seq := m.seq.Next()
	log.Debug().
		Str("component", "tui").
		Str("operation", "fetch").
		Uint64("seq", seq).
		Str("query", m.state.Params().Encode()).
		Msg("Fetching exception logs")
	return fetchLogsCmd(m.ctx, m.fetcher, m.state, seq)
}

func (m *Model) applyResult(rs *models.ResultSet) {
	if rs == nil {
		rs = &models.ResultSet{}
	}
	m.records = rs.Data
	m.total = rs.Total
	m.logTable.SetRows(render.Body(m.records, m.renderOpts))
}

func (m *Model) applySettings(s *models.Settings, err error) tea.Cmd {
	if err != nil {
		log.Error().Err(err).Str("component", "tui").Str("action", "reload_settings").Msg("Ignoring invalid settings")
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("settings not reloaded: %w", err)} }
	}
	f, err := m.newFetcher(s)
	if err != nil {
		log.Error().Err(err).Str("component", "tui").Str("action", "reload_settings").Msg("Ignoring invalid settings")
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("settings not reloaded: %w", err)} }
	}

	m.settings = s
	m.fetcher = f
	m.endpoint = s.Endpoint
	m.renderOpts = renderOptions(s)
	applyTheme(s.Appearance.Theme)
	m.logTable.SetRows(render.Body(m.records, m.renderOpts))
	log.Info().Str("component", "tui").Str("action", "reload_settings").Str("endpoint", s.Endpoint).Msg("Settings reloaded")
	return m.refresh()
}

// ── Query mutations ──────────────────────────────────────────────

func (m *Model) setFilter(field, value string) tea.Cmd {
	if err := m.state.UpdateFilter(field, value); err != nil {
		log.Error().Err(err).Str("component", "tui").Str("field", field).Msg("Rejected filter change")
		return nil
	}
	m.filterBar.Sync(m.state.Filters)
	return m.refresh()
}

func (m *Model) clearFilters() tea.Cmd {
	for _, field := range []string{models.FieldSearch, models.FieldStatusCode, models.FieldMethod} {
		_ = m.state.UpdateFilter(field, "")
	}
	m.filterBar.Sync(m.state.Filters)
	return m.refresh()
}

func (m *Model) toggleSort(label string) tea.Cmd {
	if err := m.state.ToggleSort(label); err != nil {
		return nil
	}
	m.logTable.SetSort(m.state.Sort)
	return m.refresh()
}

func (m *Model) totalPages() int {
	return query.TotalPages(m.total, m.state.Pagination.Limit)
}

// pageChanged refreshes when a paging call moved the cursor.
func (m *Model) pageChanged(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	return m.refresh()
}

// ── Key handling ─────────────────────────────────────────────────

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, globalKeys.ForceQuit) {
		return m.doQuit()
	}

	if m.activeOverlay != overlayNone {
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return nil
	}

	if m.detail.IsOpen() {
		return m.handleDetailKey(msg)
	}
	if m.focus == focusFilters {
		return m.handleFilterKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *Model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m.doQuit()
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	case key.Matches(msg, globalKeys.Tab):
		m.focus = focusFilters
		return m.filterBar.Focus(fieldSearch)
	case key.Matches(msg, tableKeys.Search):
		m.focus = focusFilters
		return m.filterBar.Focus(fieldSearch)

	case key.Matches(msg, tableKeys.Up):
		m.logTable.MoveUp()
	case key.Matches(msg, tableKeys.Down):
		m.logTable.MoveDown()
	case key.Matches(msg, tableKeys.View):
		m.openDetail()

	case key.Matches(msg, tableKeys.StatusNext):
		return m.setFilter(models.FieldStatusCode, m.filterBar.CycleStatus(1))
	case key.Matches(msg, tableKeys.StatusPrev):
		return m.setFilter(models.FieldStatusCode, m.filterBar.CycleStatus(-1))
	case key.Matches(msg, tableKeys.MethodNext):
		return m.setFilter(models.FieldMethod, m.filterBar.CycleMethod(1))
	case key.Matches(msg, tableKeys.MethodPrev):
		return m.setFilter(models.FieldMethod, m.filterBar.CycleMethod(-1))
	case key.Matches(msg, tableKeys.Clear):
		return m.clearFilters()

	case key.Matches(msg, tableKeys.SortTime):
		return m.toggleSort("Timestamp")
	case key.Matches(msg, tableKeys.SortStatus):
		return m.toggleSort("Status Code")

	case key.Matches(msg, tableKeys.NextPage):
		return m.pageChanged(m.state.NextPage(m.totalPages()))
	case key.Matches(msg, tableKeys.PrevPage):
		return m.pageChanged(m.state.PrevPage())
	case key.Matches(msg, tableKeys.FirstPage):
		return m.pageChanged(m.state.FirstPage())
	case key.Matches(msg, tableKeys.LastPage):
		return m.pageChanged(m.state.LastPage(m.totalPages()))
	case key.Matches(msg, tableKeys.Limit):
		m.state.CycleLimit()
		return m.refresh()
	case key.Matches(msg, tableKeys.Refresh):
		return m.refresh()
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, filterKeys.Done):
		m.filterBar.Blur()
		m.focus = focusTable
		return nil
	case key.Matches(msg, filterKeys.Next):
		cmd, ok := m.filterBar.Next()
		if !ok {
			m.focus = focusTable
		}
		return cmd
	case key.Matches(msg, filterKeys.Prev):
		cmd, ok := m.filterBar.Prev()
		if !ok {
			m.focus = focusTable
		}
		return cmd
	}

	if m.filterBar.Cursor() == fieldSearch {
		value, changed, cmd := m.filterBar.UpdateInput(msg)
		if !changed {
			return cmd
		}
		return tea.Batch(cmd, m.setFilter(models.FieldSearch, value))
	}

	delta := 0
	switch {
	case key.Matches(msg, filterKeys.Option):
		delta = 1
	case key.Matches(msg, filterKeys.Back):
		delta = -1
	case key.Matches(msg, globalKeys.Quit):
		return m.doQuit()
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	}
	if delta == 0 {
		return nil
	}
	if field, value, ok := m.filterBar.Cycle(delta); ok {
		return m.setFilter(field, value)
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, detailKeys.Back):
		m.detail.Close()
	case key.Matches(msg, detailKeys.Up):
		m.detail.LineUp()
	case key.Matches(msg, detailKeys.Down):
		m.detail.LineDown()
	case key.Matches(msg, detailKeys.PageUp):
		m.detail.PageUp()
	case key.Matches(msg, detailKeys.PageDown):
		m.detail.PageDown()
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
	}
	return nil
}

func (m *Model) openDetail() {
	i := m.logTable.Cursor()
	if i < 0 || i >= len(m.records) {
		return
	}
	m.detail.Open(m.records[i], m.renderOpts)
}

// doQuit cancels in-flight requests, clears the program ref and quits.
func (m *Model) doQuit() tea.Cmd {
	m.cancel()
	m.program.Clear()
	return tea.Quit
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || m.activeOverlay != overlayNone {
		return nil
	}

	if m.detail.IsOpen() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.detail.LineUp()
		case tea.MouseButtonWheelDown:
			m.detail.LineDown()
		}
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.logTable.MoveUp()
		return nil
	case tea.MouseButtonWheelDown:
		m.logTable.MoveDown()
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch msg.Y {
	case tableTop, tableTop + 1:
		return m.handleHeaderClick(msg.X)
	case 1:
		m.focus = focusFilters
		return m.filterBar.Focus(fieldSearch)
	}
	return nil
}

// handleHeaderClick toggles the sort when a sortable header is clicked.
func (m *Model) handleHeaderClick(x int) tea.Cmd {
	i, ok := m.logTable.ColumnAt(x)
	if !ok || !render.Columns[i].Sortable {
		return nil
	}
	return m.toggleSort(render.Columns[i].Title)
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	// title bar, filter bar, status bar
	bodyHeight := m.height - tableTop - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.filterBar.SetWidth(m.width)
	m.logTable.SetSize(m.width, bodyHeight)
	m.detail.SetSize(m.width, bodyHeight)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < 80 || m.height < 12 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 80x12, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	header := renderHeader(m.endpoint, m.state.Sort, m.width)
	filters := truncateContent(m.filterBar.View(m.focus == focusFilters && !m.detail.IsOpen()), m.width, 1)

	bodyHeight := m.height - tableTop - 1
	var body string
	if m.detail.IsOpen() {
		body = m.detail.View()
	} else {
		body = m.logTable.View()
	}
	body = truncateContent(body, m.width, bodyHeight)
	if gap := bodyHeight - lipgloss.Height(body); gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	statusBar := renderStatusBar(&m, m.width)
	view := lipgloss.JoinVertical(lipgloss.Left, header, filters, body, statusBar)

	if m.activeOverlay == overlayHelp {
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
