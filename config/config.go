// Package config loads pathless settings from defaults, an optional file
// and PATHLESS_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PATHLESS_SERVER_PORT.
const EnvPrefix = "PATHLESS"

// Config is the complete pathless configuration.
type Config struct {
	Grid    GridConfig    `mapstructure:"grid" json:"grid"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
	Storage StorageConfig `mapstructure:"storage" json:"storage"`
}

// GridConfig sizes the grids created for server sessions.
type GridConfig struct {
	Width    int     `mapstructure:"width" json:"width"`
	Height   int     `mapstructure:"height" json:"height"`
	CellSize float64 `mapstructure:"cellSize" json:"cellSize"`
}

// ServerConfig is the listen address of the websocket server.
type ServerConfig struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// StorageConfig locates the scenario database.
type StorageConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Grid:    GridConfig{Width: 30, Height: 30, CellSize: 1},
		Server:  ServerConfig{Host: "localhost", Port: 3000},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Storage: StorageConfig{Path: "pathless.db"},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("grid.width", d.Grid.Width)
	v.SetDefault("grid.height", d.Grid.Height)
	v.SetDefault("grid.cellSize", d.Grid.CellSize)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("storage.path", d.Storage.Path)
}

// Load builds a Config. An empty path looks for pathless.{yaml,toml,json}
// in the working directory and falls back to defaults when none exists; an
// explicit path must exist. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pathless")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks sizes, port range and the logging settings.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width <= 0:
		return &ConfigError{Field: "grid.width", Message: "must be positive"}
	case c.Grid.Height <= 0:
		return &ConfigError{Field: "grid.height", Message: "must be positive"}
	case c.Grid.CellSize <= 0:
		return &ConfigError{Field: "grid.cellSize", Message: "must be positive"}
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return &ConfigError{Field: "server.port", Message: "must be in 1..65535"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "unknown level " + strconv.Quote(c.Logging.Level)}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	}
	return nil
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
