// Package config loads the global zk configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Environment variables consulted by Load.
const (
	EnvConfig    = "ZK_CONFIG"
	EnvPath      = "ZK_PATH"
	EnvEditor    = "ZK_EDITOR"
	EnvExtension = "ZK_EXTENSION"
)

// Defaults.
const (
	DefaultRoot      = "~/.zk"
	DefaultEditor    = "vim"
	DefaultExtension = "md"
	DefaultPicker    = "fzf"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var accentPattern = regexp.MustCompile(`^(?i:none|off|default|[0-9]{1,3}|#[0-9a-f]{3}|#[0-9a-f]{6})$`)

// Config is the global zk configuration.
type Config struct {
	// Path is the storage root holding the notes.
	Path string `toml:"path"`

	// Editor opens notes (defaults to $EDITOR, then vim).
	Editor string `toml:"editor"`

	// Extension selects which files are notes, without the leading dot.
	Extension string `toml:"extension"`

	// Picker is the fzf executable used for interactive selection.
	Picker string `toml:"picker"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Source is the file the config was read from; empty when none existed.
	Source string `toml:"-"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255"), a hex color ("#RGB" or
	// "#RRGGBB"), or "none" to turn it off.
	Accent string `toml:"accent"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Editor, validation.Required),
		validation.Field(&c.Extension, validation.Required, is.Alphanumeric),
	)
	if err == nil {
		err = validation.ValidateStruct(&c.UI,
			validation.Field(&c.UI.Accent, validation.Match(accentPattern)),
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if strings.TrimSpace(c.Path) == "" {
		c.Path = DefaultRoot
	}
	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = DefaultEditor
	}
	if strings.TrimSpace(c.Extension) == "" {
		c.Extension = DefaultExtension
	}
	if strings.TrimSpace(c.Picker) == "" {
		c.Picker = DefaultPicker
	}
}

// Load reads the config at path, or at DefaultPath when path is empty. A
// missing file yields the defaults. Environment overrides are applied, the
// storage path is expanded, and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadFrom(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom decodes the file at path without defaults or validation.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	cfg.Source = path
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvEditor); v != "" {
		c.Editor = v
	}
	if v := os.Getenv(EnvExtension); v != "" {
		c.Extension = v
	}
}

func (c *Config) normalize() error {
	c.Extension = strings.TrimPrefix(strings.TrimSpace(c.Extension), ".")
	path, err := ExpandHome(strings.TrimSpace(c.Path))
	if err != nil {
		return err
	}
	c.Path = path
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DefaultPath returns the config file location: $ZK_CONFIG, then
// ~/.config/zk/config.toml or ~/.zk.toml if either exists, then the OS
// config directory.
func DefaultPath() string {
	if v := os.Getenv(EnvConfig); v != "" {
		return v
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range []string{
			filepath.Join(home, ".config", "zk", "config.toml"),
			filepath.Join(home, ".zk.toml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "zk", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
