package models

import "time"

// DefaultEndpoint is the exception-logs resource queried when nothing else is configured.
const DefaultEndpoint = "https://jira-backend-7e3x.onrender.com/api/exception-logs"

// Defaults for a freshly mounted view.
const (
	DefaultPageSize   = 10
	DefaultTimeout    = 10 * time.Second
	DefaultTimeFormat = "2006-01-02 15:04:05"
)

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"` // "system" | "light" | "dark"
}

// Settings represents the viewer settings.
// This corresponds to ~/.exlogs/settings.yaml.
type Settings struct {
	Version    int               `mapstructure:"version" yaml:"version"`
	Endpoint   string            `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout    time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	PageSize   int               `mapstructure:"page_size" yaml:"page_size"`
	TimeFormat string            `mapstructure:"time_format" yaml:"time_format"`
	Timezone   string            `mapstructure:"timezone" yaml:"timezone"` // empty = local
	Headers    map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
	Appearance AppearanceConfig  `mapstructure:"appearance" yaml:"appearance"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:    1,
		Endpoint:   DefaultEndpoint,
		Timeout:    DefaultTimeout,
		PageSize:   DefaultPageSize,
		TimeFormat: DefaultTimeFormat,
		Appearance: AppearanceConfig{
			Theme: "system",
		},
	}
}

// Location resolves the configured timezone, falling back to the local zone.
func (s *Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
