// Package config handles settings loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the per-user exlogs directory.
	GlobalDirName = ".exlogs"

	// SettingsFileName is the settings file inside the global directory.
	SettingsFileName = "settings.yaml"

	// LogFileName is the diagnostic log written while the TUI owns the terminal.
	LogFileName = "exlogs.log"

	// EnvFileName is the dotenv file read from the working directory.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override, e.g. EXLOGS_ENDPOINT.
	EnvPrefix = "EXLOGS"
)

// GlobalDir returns the path to the global exlogs directory (~/.exlogs/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalLogFile returns the path to the diagnostic log file.
func GlobalLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}
