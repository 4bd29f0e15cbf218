// Package config loads the player configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// AppName names the configuration and data directories.
const AppName = "beetbox"

// Audio backends.
const (
	AudioBeep = "beep"
	AudioMock = "mock"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StoragePrefs  = "prefs"
)

type Config struct {
	Player  PlayerConfig  `koanf:"player"`
	Storage StorageConfig `koanf:"storage"`
	Library LibraryConfig `koanf:"library"`
	Log     LogConfig     `koanf:"log"`
}

type PlayerConfig struct {
	Audio          string `koanf:"audio"`            // "beep" or "mock"
	DefaultVolume  int    `koanf:"default_volume"`   // 0-100
	TickIntervalMS int    `koanf:"tick_interval_ms"` // position refresh period
}

type StorageConfig struct {
	Backend string `koanf:"backend"` // "sqlite" or "prefs"
	Path    string `koanf:"path"`    // database file, empty for the XDG data dir
}

type LibraryConfig struct {
	Extensions []string `koanf:"extensions"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "text" or "json"
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Audio:          AudioBeep,
			DefaultVolume:  domain.DefaultVolume,
			TickIntervalMS: 1000,
		},
		Storage: StorageConfig{Backend: StorageSQLite},
		Library: LibraryConfig{Extensions: []string{".mp3", ".flac", ".wav", ".ogg"}},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the user config file and then explicit, when given; later files
// win. Missing files are skipped, except an explicit path.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := Default()
	if k.Exists("library.extensions") {
		// Unmarshal fills a non-nil slice in place and never shrinks it.
		cfg.Library.Extensions = nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Path = expandPath(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{filepath.Join(xdg.ConfigHome, AppName, "config.toml")}
}

// Validate checks value ranges and normalizes the extension list.
func (c *Config) Validate() error {
	if c.Player.Audio != AudioBeep && c.Player.Audio != AudioMock {
		return fmt.Errorf("player.audio: unknown backend %q", c.Player.Audio)
	}
	if c.Storage.Backend != StorageSQLite && c.Storage.Backend != StoragePrefs {
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Player.DefaultVolume < 0 || c.Player.DefaultVolume > domain.MaxVolume {
		return fmt.Errorf("player.default_volume: %w", domain.ErrInvalidVolume)
	}
	if c.Player.TickIntervalMS <= 0 {
		return fmt.Errorf("player.tick_interval_ms: must be positive, got %d", c.Player.TickIntervalMS)
	}

	exts := make([]string, 0, len(c.Library.Extensions))
	for _, e := range c.Library.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !slices.Contains(exts, e) {
			exts = append(exts, e)
		}
	}
	c.Library.Extensions = exts
	return nil
}

// TickInterval returns the position refresh period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Player.TickIntervalMS) * time.Millisecond
}

// DatabasePath returns the SQLite file, creating nothing.
// An empty storage.path resolves to $XDG_DATA_HOME/beetbox/beetbox.db.
func (c *Config) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
