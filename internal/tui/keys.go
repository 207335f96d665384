package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
	Tab       key.Binding
}

var globalKeys = GlobalKeys{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h", "?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "filters"),
	),
}

// TableKeys are active when the log table is focused.
type TableKeys struct {
	Up         key.Binding
	Down       key.Binding
	View       key.Binding
	Search     key.Binding
	StatusNext key.Binding
	StatusPrev key.Binding
	MethodNext key.Binding
	MethodPrev key.Binding
	Clear      key.Binding
	SortTime   key.Binding
	SortStatus key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	Limit      key.Binding
	Refresh    key.Binding
}

var tableKeys = TableKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	View: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "view"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	StatusNext: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s/S", "status code"),
	),
	StatusPrev: key.NewBinding(
		key.WithKeys("S"),
	),
	MethodNext: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m/M", "method"),
	),
	MethodPrev: key.NewBinding(
		key.WithKeys("M"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	SortTime: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "sort by time"),
	),
	SortStatus: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "sort by status"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("n/p", "page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left", "h"),
	),
	FirstPage: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/G", "first/last"),
	),
	LastPage: key.NewBinding(
		key.WithKeys("G", "end"),
	),
	Limit: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "page size"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "refresh"),
	),
}

// FilterKeys are active when the filter bar is focused.
type FilterKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Option key.Binding
	Back   key.Binding
	Done   key.Binding
}

var filterKeys = FilterKeys{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("Shift+Tab", "prev field"),
	),
	Option: key.NewBinding(
		key.WithKeys(" ", "space", "right", "l"),
		key.WithHelp("Space/←/→", "choose"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("Esc", "back to table"),
	),
}

// DetailKeys are active while a record is open.
type DetailKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding
}

var detailKeys = DetailKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp/PgDn", "scroll"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "backspace"),
		key.WithHelp("Esc", "back"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Cancel key.Binding
}

var overlayKeys = OverlayKeys{
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("Esc", "close"),
	),
}
