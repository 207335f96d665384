package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/exlogs/internal/query"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	// The bar is one row. Page info wins over key hints when space runs out.
	right := ansi.Truncate(pageInfo(m.state, m.total)+" ", width, "")
	left := ""
	if room := width - lipgloss.Width(right) - 2; room > 0 {
		left = " " + ansi.Truncate(getKeyHints(m), room, "…")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// pageInfo renders "Page X of Y · N records · L per page".
func pageInfo(s query.State, total int) string {
	pages := query.TotalPages(total, s.Pagination.Limit)
	return hintStyle.Render(fmt.Sprintf("Page %d of %d · %d records · %d per page",
		s.Pagination.Page, pages, total, s.Pagination.Limit))
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}

	if m.detail.IsOpen() {
		return keyHint("Esc", "back") + "  " + keyHint("PgUp/PgDn", "scroll")
	}

	if m.focus == focusFilters {
		if m.filterBar.Cursor() == fieldSearch {
			return keyHint("", "(type to search)") + "  " + keyHint("Tab", "next") + "  " + keyHint("Esc", "done")
		}
		return keyHint("Space/←/→", "choose") + "  " + keyHint("Tab", "next") + "  " + keyHint("Esc", "done")
	}

	return keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " +
		keyHint("/", "search") + "  " + keyHint("s", "status") + "  " +
		keyHint("m", "method") + "  " + keyHint("t/c", "sort") + "  " +
		keyHint("n/p", "page") + "  " + keyHint("Enter", "view")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(ansi.Truncate(" "+msg, width, "…"))
}
