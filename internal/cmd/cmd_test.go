package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/config"
	"storefront/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	for _, broker := range []string{"", "none"} {
		p, closeFn, err := newPublisher(config.EventsConfig{Broker: broker})
		require.NoError(t, err)
		assert.IsType(t, infra.NoopPublisher{}, p)
		closeFn()
	}

	_, _, err := newPublisher(config.EventsConfig{Broker: "sqs"})
	assert.ErrorContains(t, err, "sqs")
}

func TestNewRedisClient_Disabled(t *testing.T) {
	assert.Nil(t, newRedisClient(context.Background(), config.RedisConfig{}))
}

func TestMigrateCommand(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "shop.db")
	t.Setenv("STOREFRONT_DATABASE_DRIVER", "sqlite")
	t.Setenv("STOREFRONT_DATABASE_DSN", dbFile)
	t.Setenv("STOREFRONT_DATABASE_LOG_LEVEL", "silent")

	rootCmd.SetArgs([]string{"migrate", "--config", t.TempDir()})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, dbFile)
}
