package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	// Home overrides the user's home directory; tests set it.
	Home string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file GetConfigPath finds, or returns
// the defaults when there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" && exists(l.OverridePath) {
		return l.OverridePath
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		if p := filepath.Join(wd, ".pixelpadrc"); exists(p) {
			return p
		}
	}

	for _, name := range []string{"config.rc", "pixelpad.rc"} {
		if p := filepath.Join(l.configDir(), name); exists(p) {
			return p
		}
	}
	return ""
}

// DefaultPath is where `config save` writes when no file exists yet.
func (l *Loader) DefaultPath() string {
	return filepath.Join(l.configDir(), "config.rc")
}

// Save writes cfg to path, creating parent directories as needed.
func (l *Loader) Save(cfg *Config, path string) error {
	if path == "" {
		path = l.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (l *Loader) configDir() string {
	home := l.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".config", "pixelpad")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
