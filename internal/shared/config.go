package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Catalog sources accepted by [CatalogConfig.Source].
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Player   PlayerConfig   `toml:"player"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// PlayerConfig contains transport and display settings.
type PlayerConfig struct {
	TickInterval Duration `toml:"tick_interval"`
	Volume       int      `toml:"volume"`
	DefaultCover string   `toml:"default_cover"`
}

// CatalogConfig selects where the song catalog is read from.
type CatalogConfig struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the HTTP remote-control API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration wraps [time.Duration] so it can be written as "1s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidConfig, string(text))
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges and the catalog source.
func (c *Config) Validate() error {
	if c.Player.TickInterval.Duration <= 0 {
		return fmt.Errorf("%w: player.tick_interval must be positive", ErrInvalidConfig)
	}
	if c.Player.Volume < 0 || c.Player.Volume > 100 {
		return fmt.Errorf("%w: player.volume must be within 0-100, got %d", ErrInvalidConfig, c.Player.Volume)
	}

	switch c.Catalog.Source {
	case SourceEmbedded, "":
	case SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("%w: catalog.path is required for source %q", ErrInvalidConfig, SourceFile)
		}
	case SourceDatabase:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for source %q", ErrInvalidConfig, SourceDatabase)
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownSource, c.Catalog.Source)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}
