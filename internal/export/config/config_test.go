package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("LOG_BACKEND", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDBURI)
	assert.Equal(t, DefaultDatabaseName, cfg.DatabaseName)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "collection-export", cfg.AppName)
	assert.Equal(t, "logrus", cfg.Log.Backend)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "Analytics")
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "5s")
	t.Setenv("LOG_BACKEND", "zap")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Analytics", cfg.DatabaseName)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, LogConfig{Backend: "zap", Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadConfig_MissingURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	cfg, err := LoadConfig()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "MONGODB_URI environment variable is not set")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "failed to load export configuration")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultDatabaseName, cfg.DatabaseName)
}
