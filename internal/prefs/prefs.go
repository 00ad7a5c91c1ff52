// Package prefs handles platewatch user preferences persistence.
// Preferences are stored in ~/.config/platewatch/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for platewatch.
type Prefs struct {
	Theme       string `toml:"theme"`
	PollSeconds int    `toml:"poll_seconds"`
	AutoUpdate  bool   `toml:"auto_update"`
}

const (
	defaultPrefsPath = "~/.config/platewatch/prefs.toml"
	defaultTheme     = "Dracula"
	defaultPoll      = 3
)

// PollChoices lists the selectable poll intervals in seconds.
var PollChoices = []int{1, 3, 5}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, PollSeconds: defaultPoll, AutoUpdate: true}
}

// Load reads preferences from the given path, falling back to defaults
// when the file is missing or unreadable.
func Load(path string) Prefs {
	prefs := defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs
		}
		return prefs // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults() // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if !validPoll(prefs.PollSeconds) {
		prefs.PollSeconds = defaultPoll
	}

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func validPoll(seconds int) bool {
	for _, choice := range PollChoices {
		if seconds == choice {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
