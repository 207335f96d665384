// Package tui implements the interactive exception log viewer.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/exlogs/internal/client"
	"github.com/watchfire-io/exlogs/internal/config"
	"github.com/watchfire-io/exlogs/internal/models"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// applyTheme forces a light or dark palette. "system" leaves detection to lipgloss.
func applyTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// Run launches the TUI with settings from loader and reloads them whenever
// the settings file changes.
func Run(loader *config.Loader) error {
	settings, err := loader.Settings()
	if err != nil {
		return err
	}

	c, err := client.FromSettings(settings)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	applyTheme(settings.Appearance.Theme)

	ref := &programRef{}
	model := NewModel(Options{
		Settings: settings,
		Fetcher:  c,
		Endpoint: c.Endpoint(),
	}, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)
	defer ref.Clear()

	loader.Watch(func(s *models.Settings, err error) {
		ref.Send(SettingsChangedMsg{Settings: s, Err: err})
	})

	_, err = p.Run()
	return err
}
