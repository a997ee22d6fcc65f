package database

import (
	"testing"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
		wantErr  bool
	}{
		{driver: "", expected: "mysql"},
		{driver: "mysql", expected: "mysql"},
		{driver: "postgres", expected: "postgres"},
		{driver: "sqlite", expected: "sqlite"},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialector(config.DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: 1, Name: "shop"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Name())
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, logLevel("INFO"))
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Warn, logLevel("whatever"))
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"customers", "video_games", "consoles", "accessories",
		"orders", "order_line_items", "saved_shipping_addresses", "saved_cards",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("order_line_items", "product_type_tag"))
}
