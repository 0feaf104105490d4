// Package session manages the persisted browser profile that keeps cookies
// and session state between runs. The profile directory itself is opaque:
// Chrome owns its layout, we only decide where it lives and when it is
// thrown away.
package session

import (
	"os"
	"path/filepath"

	"serpmate/internal/config"
)

// DefaultProfileDir returns the default location for the persisted profile
func DefaultProfileDir() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile"), nil
}

// Resolve returns the configured profile directory, or the default when the
// config leaves it empty.
func Resolve(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return DefaultProfileDir()
}

// Ensure creates the profile directory if it does not exist yet
func Ensure(dir string) error {
	return os.MkdirAll(dir, 0700)
}

// IsWarm reports whether the profile holds data from a previous run. A warm
// profile makes a challenge page less likely.
func IsWarm(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// Reset deletes the profile directory. Manual operator action only; the run
// path never tears the profile down.
func Reset(dir string) error {
	return os.RemoveAll(dir)
}
