package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)
)

// Filter bar styles.
var (
	filterLabelStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	filterValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	filterActiveValueStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	filterCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// Table styles.
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, cellPadding).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorDim)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, cellPadding)

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// Detail view styles.
var (
	detailLabelStyle = lipgloss.NewStyle().
				Width(16).
				Foreground(colorDim)

	detailSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// statusCodeStyle colors a status code cell by class.
func statusCodeStyle(code string) lipgloss.Style {
	if code == "" {
		return lipgloss.NewStyle()
	}
	switch code[0] {
	case '2':
		return lipgloss.NewStyle().Foreground(colorGreen)
	case '4':
		return lipgloss.NewStyle().Foreground(colorYellow)
	case '5':
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorOrange)
	}
}

func tableStyles() table.Styles {
	return table.Styles{
		Header:   tableHeaderStyle,
		Cell:     tableCellStyle,
		Selected: tableSelectedStyle,
	}
}
