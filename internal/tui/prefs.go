package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// prefsFileName is the UI preferences file inside the state directory.
const prefsFileName = "ui.toml"

// Prefs holds UI state that survives restarts.
type Prefs struct {
	Filter string `toml:"filter"`
	Sort   string `toml:"sort"`
}

// LoadPrefs reads saved preferences from the state directory. A missing file
// returns zero-value prefs without error.
func LoadPrefs(stateDir string) (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(filepath.Join(stateDir, prefsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("tui: read prefs: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("tui: parse prefs: %w", err)
	}
	return p, nil
}

// SavePrefs writes preferences to the state directory, creating it if needed.
func SavePrefs(stateDir string, p Prefs) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("tui: state dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("tui: encode prefs: %w", err)
	}
	path := filepath.Join(stateDir, prefsFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("tui: write prefs: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("tui: write prefs: %w", err)
	}
	return nil
}
