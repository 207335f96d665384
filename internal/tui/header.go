package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/exlogs/internal/models"
)

const appTitle = "Exception Logs"

func renderHeader(endpoint string, sort models.SortState, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorRed).Render("●")
	name := titleStyle.Render(appTitle)

	left := fmt.Sprintf(" %s %s", dot, name)
	right := hintStyle.Render(fmt.Sprintf("sorted by %s %s", sort.SortBy, strings.ToLower(string(sort.SortOrder))))
	if host := endpointHost(endpoint); host != "" {
		right = hintStyle.Render(host) + "  " + right
	}
	right += " "

	if room := width - lipgloss.Width(left) - 1; lipgloss.Width(right) > room {
		right = ansi.Truncate(right, max(room, 0), "…")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(ansi.Truncate(left+strings.Repeat(" ", gap)+right, width, ""))
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
