package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "*", cfg.App.CORSOrigin)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 10*time.Minute, cfg.Cache.DirectoryTTL)
	assert.Equal(t, "doctors", cfg.Elasticsearch.Index)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9000\n" +
		"DB_DRIVER=memory\n" +
		"REDIS_HOST=localhost\n" +
		"JWT_ACCESS_EXPIRY=1h\n" +
		"CACHE_DIRECTORY_TTL=not-a-duration\n" +
		"KAFKA_BROKERS=kafka-1:9092, kafka-2:9092,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.App.Port, "environment overrides the file")
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, 10*time.Minute, cfg.Cache.DirectoryTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}
