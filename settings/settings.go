// Package settings persists the hot-key bindings across runs. The stored
// record is {"hotkeys": {"next": ..., "prev": ...}} in the per-user config
// directory; nothing else about the session (text, cursor) is persisted.
package settings

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Built-in default combos, used whenever the stored value is missing.
const (
	DefaultNext = "ctrl+shift+alt+right"
	DefaultPrev = "ctrl+shift+alt+left"
)

// Settings holds the user-editable hot-key binding map. Keys are fixed to
// the two actions; values are opaque combo strings round-tripped to the
// hot-key backend.
type Settings struct {
	Hotkeys map[string]string
}

// Defaults returns the built-in bindings.
func Defaults() Settings {
	return Settings{Hotkeys: map[string]string{
		"next": DefaultNext,
		"prev": DefaultPrev,
	}}
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore resolves the settings file location: the override if given,
// otherwise <UserConfigDir>/clipbeat/config.json with a ~/.config fallback.
func NewStore(pathOverride string) *Store {
	if pathOverride != "" {
		return &Store{path: pathOverride}
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			configDir = filepath.Join(home, ".config")
		} else {
			configDir = "."
		}
	}
	return &Store{path: filepath.Join(configDir, "clipbeat", "config.json")}
}

// Path returns the resolved settings file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored bindings merged over the defaults. A missing file
// is normal and silent. A malformed file is reported through the returned
// error, but the Settings are still usable (defaults win); startup must
// never fail on settings.
func (s *Store) Load() (Settings, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault("hotkeys.next", DefaultNext)
	v.SetDefault("hotkeys.prev", DefaultPrev)

	var warn error
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			warn = fmt.Errorf("settings file %s unreadable, using defaults: %w", s.path, err)
			log.Printf("%v", warn)
			return Defaults(), warn
		}
	}

	set := Settings{Hotkeys: map[string]string{
		"next": v.GetString("hotkeys.next"),
		"prev": v.GetString("hotkeys.prev"),
	}}
	// Stored blanks fall back to the defaults rather than unbinding an action.
	if set.Hotkeys["next"] == "" {
		set.Hotkeys["next"] = DefaultNext
	}
	if set.Hotkeys["prev"] == "" {
		set.Hotkeys["prev"] = DefaultPrev
	}
	return set, nil
}

// Save writes the whole record, creating the config directory if needed.
// Actions other than next/prev are dropped on the way out.
func (s *Store) Save(set Settings) error {
	hotkeys := map[string]string{}
	for _, action := range []string{"next", "prev"} {
		if combo, ok := set.Hotkeys[action]; ok && combo != "" {
			hotkeys[action] = combo
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.Set("hotkeys", hotkeys)
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
