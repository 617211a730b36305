package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// DefaultDatabaseName is the database an exporter binds to when
// DATABASE_NAME is not set.
const DefaultDatabaseName = "Proj1"

// LogConfig selects the logging backend and its output.
type LogConfig struct {
	Backend string `env:"LOG_BACKEND" envDefault:"logrus" json:"backend"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" json:"level"`
	Format  string `env:"LOG_FORMAT" envDefault:"text" json:"format"`
}

// Config holds all configuration for the export module.
type Config struct {
	MongoDBURI     string        `env:"MONGODB_URI" json:"-"`
	DatabaseName   string        `env:"DATABASE_NAME" envDefault:"Proj1" json:"database_name"`
	AppName        string        `env:"MONGODB_APP_NAME" envDefault:"collection-export" json:"app_name"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"30s" json:"connect_timeout"`
	Log            LogConfig     `json:"log"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load export configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, errors.New("failed to load log configuration from environment: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and fills in fallbacks for empty optional ones.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoDBURI) == "" {
		// MONGODB_URI is critical, return an error if not set
		return errors.New("MONGODB_URI environment variable is not set")
	}
	if strings.TrimSpace(c.DatabaseName) == "" {
		c.DatabaseName = DefaultDatabaseName
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.Log.Backend == "" {
		c.Log.Backend = "logrus"
	}
	return nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MongoDBURI:     "mongodb://localhost:27017", // Default for local development
		DatabaseName:   DefaultDatabaseName,
		AppName:        "collection-export",
		ConnectTimeout: 30 * time.Second,
		Log: LogConfig{
			Backend: "logrus",
			Level:   "info",
			Format:  "text",
		},
	}
}
