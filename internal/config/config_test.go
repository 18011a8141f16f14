package config

import (
	"testing"

	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 500, cfg.Stats.WriteBatchSize)
	assert.Equal(t, 3, cfg.Stats.BackfillDays)
	assert.Equal(t, []int{1, 3, 7}, cfg.Stats.CohortWindows)
	assert.Equal(t, 30, cfg.Stats.Buckets.RecentMaxAgeDays)
	assert.Equal(t, uint(3), cfg.Stats.QueryRetryAttempts)
	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stats",
		Password: "secret",
		DBName:   "maka_stats",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"user=stats password=secret dbname=maka_stats host=localhost port=5432 sslmode=disable",
		cfg.GetDSN())
}

func TestClickHouseClientOptions(t *testing.T) {
	cfg := ClickHouseConfig{
		Address:  "localhost:9000",
		Username: "default",
		Password: "secret",
		Database: "events",
	}

	options := cfg.GetClientOptions()
	assert.Equal(t, []string{"localhost:9000"}, options.Addr)
	assert.Equal(t, "events", options.Auth.Database)
	assert.Nil(t, options.TLS)

	cfg.TLS = true
	assert.NotNil(t, cfg.GetClientOptions().TLS)
}
