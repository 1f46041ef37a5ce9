package db

import (
	"testing"
	"time"

	"github.com/ikkim/hubline-admin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)

	configurePool(sqlDB, &config.DatabaseConfig{MaxIdleConns: 2, MaxOpenConns: 7, ConnMaxLifetime: time.Minute})
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)

	// zero keeps the previous limit
	configurePool(sqlDB, &config.DatabaseConfig{})
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"info":  logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
		"":      logger.Silent,
		"loud":  logger.Silent,
	}
	for level, want := range tests {
		assert.Equal(t, want, gormLogLevel(level), level)
	}
}

func TestClose_NotInitialized(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	assert.NoError(t, Close())
}
