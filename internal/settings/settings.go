// Package settings loads Dworshak's own preferences: where the store lives
// by default and how chatty logging is. Settings are optional; without a
// settings file the built-in defaults apply.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/dworshak/dworshak/internal/logger"
)

const (
	// EnvSettingsPath names an explicit settings file.
	EnvSettingsPath = "DWORSHAK_SETTINGS"

	// StoreDirName is the dot-directory under the home directory holding the store.
	StoreDirName = ".dworshak"
	// StoreFileName is the store document name.
	StoreFileName = "config.json"
)

// SupportedSettingsNames lists settings file names in order of preference
var SupportedSettingsNames = []string{
	"settings.yml",
	"settings.yaml",
	"settings.toml",
	"settings.json",
}

// Settings holds process-wide preferences
type Settings struct {
	DefaultPath string `koanf:"default_path"`
	LogLevel    string `koanf:"log_level"`

	// Source is the file the settings came from, empty for defaults.
	Source string `koanf:"-"`
}

// Defaults returns the built-in settings.
func Defaults() (*Settings, error) {
	path, err := DefaultStorePath()
	if err != nil {
		return nil, err
	}
	return &Settings{DefaultPath: path, LogLevel: logger.DefaultLevel}, nil
}

// DefaultStorePath returns ~/.dworshak/config.json
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, StoreDirName, StoreFileName), nil
}

// SettingsDir returns the directory searched for settings files
func SettingsDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dworshak"), nil
}

// Find returns the settings file to use, or "" when there is none.
// DWORSHAK_SETTINGS wins over the settings directory.
func Find() (string, error) {
	if explicit := os.Getenv(EnvSettingsPath); explicit != "" {
		return explicit, nil
	}

	dir, err := SettingsDir()
	if err != nil {
		return "", err
	}
	for _, name := range SupportedSettingsNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Discover finds and loads the settings file, falling back to defaults.
func Discover() (*Settings, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Defaults()
	}
	return Load(path)
}

// Load reads a settings file over the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (*Settings, error) {
	s, err := Defaults()
	if err != nil {
		return nil, err
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	expanded, err := expandHome(s.DefaultPath)
	if err != nil {
		return nil, err
	}
	s.DefaultPath = expanded
	s.Source = path
	return s, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported settings format: %s", filepath.Ext(path))
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
