// Package config resolves ambient configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// EnableFileLogging routes log output to a rotating file instead of
	// discarding it. The TUI owns the terminal, so there is no stdout option.
	EnableFileLogging bool
	// SettingsPath overrides the location of the settings file.
	SettingsPath string
	// NoGlobalHotkeys skips installing the OS keyboard hook; in-window key
	// bindings keep working.
	NoGlobalHotkeys bool
}

// Load reads an optional .env next to the executable, then the process
// environment. Every field has a usable zero default; Load cannot fail.
func Load() *Config {
	if path := envPath(); path != "" {
		_ = godotenv.Load(path)
	}
	return &Config{
		EnableFileLogging: boolEnv("ENABLE_FILE_LOGGING"),
		SettingsPath:      os.Getenv("CLIPBEAT_CONFIG"),
		NoGlobalHotkeys:   boolEnv("CLIPBEAT_NO_GLOBAL_HOTKEYS"),
	}
}

func envPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	p := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func boolEnv(key string) bool {
	return strings.ToLower(os.Getenv(key)) == "true"
}
