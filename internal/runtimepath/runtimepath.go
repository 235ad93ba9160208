package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the directory holding mwm configuration. Priority:
// 1) $XDG_CONFIG_HOME/mwm (if XDG_CONFIG_HOME is set and absolute)
// 2) ~/.config/mwm
func ConfigDir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, "mwm"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mwm"), nil
}

// ConfigFile returns the default configuration file path.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
