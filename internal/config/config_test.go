package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "none", cfg.Events.Broker)
	assert.Equal(t, 10*time.Second, cfg.Redis.CacheTTL)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  name: shop
  conn_max_lifetime: 30s
redis:
  address: redis:6379
events:
  broker: kafka
  kafka:
    brokers: ["k1:9092", "k2:9092"]
    topic: orders
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("STOREFRONT_DATABASE_PASSWORD", "s3cret")
	t.Setenv("STOREFRONT_SERVER_PORT", "7070")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 30*time.Second, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, "kafka", cfg.Events.Broker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "orders", cfg.Events.Kafka.Topic)
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}
