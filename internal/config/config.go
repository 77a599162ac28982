package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigPath is the directory searched for config.yaml when no explicit file is given.
const DefaultConfigPath = "./configs"

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML keys to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port            int           `mapstructure:"port"`             // HTTP server port (default: 8000)
		BasePath        string        `mapstructure:"base_path"`        // Prefix every API route is mounted under
		RequestTimeout  time.Duration `mapstructure:"request_timeout"`  // Bound on storage and filesystem calls per request
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Grace period for in-flight requests on shutdown
	} `mapstructure:"server"`

	// Database configuration section
	Database struct {
		Driver          string        `mapstructure:"driver"` // sqlite, mysql or postgres
		Name            string        `mapstructure:"name"`   // SQLite database file name
		DSN             string        `mapstructure:"dsn"`    // Connection string; overrides name when set
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"database"`

	// Images configuration for the cover image directory
	Images struct {
		Dir            string `mapstructure:"dir"`              // Flat directory holding cover files
		MaxUploadBytes int64  `mapstructure:"max_upload_bytes"` // Upload size cap (default: 128 KiB)
	} `mapstructure:"images"`

	// Monitor configuration for cover file checking
	Monitor struct {
		IntervalMinutes int `mapstructure:"interval_minutes"` // 0 disables the monitor
	} `mapstructure:"monitor"`

	Log struct {
		Level  string `mapstructure:"level"`  // debug, info, warn, error
		Format string `mapstructure:"format"` // console or json
	} `mapstructure:"log"`
}

// ConnectionString returns the DSN handed to the database driver.
func (c *Config) ConnectionString() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return c.Database.Name
}

// LoadConfig loads the application configuration using Viper.
// It supports environment variable overrides and YAML configuration files.
// An empty configFile searches DefaultConfigPath for config.yaml.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// e.g., "database.dsn" becomes "DATABASE_DSN"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Missing default file is fine, defaults apply. An explicit file must exist.
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.base_path", "/vinyl_library")
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.name", "vinyl_library.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("images.dir", "./images")
	v.SetDefault("images.max_upload_bytes", 128*1024)
	v.SetDefault("monitor.interval_minutes", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.ConnectionString() == "" {
		return errors.New("database connection string is empty")
	}
	if c.Images.Dir == "" {
		return errors.New("images.dir must be set")
	}
	if c.Images.MaxUploadBytes <= 0 {
		return fmt.Errorf("images.max_upload_bytes must be positive, got %d", c.Images.MaxUploadBytes)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	return nil
}
