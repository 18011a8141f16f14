package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-playground/validator/v10"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	ClickHouse ClickHouseConfig `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Stats      StatsConfig      `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type ClickHouseConfig struct {
	Address  string
	TLS      bool
	Username string
	Password string
	Database string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StatsConfig drives the daily statistics jobs. Everything here is a tuning
// knob, not a correctness rule, except ExcludedUIDs which removes platform
// test accounts from every metric.
type StatsConfig struct {
	// WriteBatchSize bounds the number of rows per insert batch during
	// materialization.
	WriteBatchSize int `mapstructure:"write_batch_size"`

	// BackfillDays is how many days back the multi-tenant backfill walks
	// when the CLI is invoked without an explicit tenant.
	BackfillDays int `mapstructure:"backfill_days"`

	// JobParallelism bounds how many (tenant, date) jobs run concurrently
	// during a backfill. Jobs for the same pair are never concurrent.
	JobParallelism int `mapstructure:"job_parallelism"`

	// CohortWindows lists the registration-anchored window sizes, in days,
	// computed by the cohort-window job.
	CohortWindows []int `mapstructure:"cohort_windows"`

	// Buckets carries the lifecycle bucket boundaries.
	Buckets types.CohortBuckets `mapstructure:"buckets"`

	// ExcludedUIDs are platform-internal test accounts.
	ExcludedUIDs []int64 `mapstructure:"excluded_uids"`

	// QueryRetryAttempts and QueryRetryInterval configure the transient
	// error retry policy for event log queries. The interval is the initial
	// backoff; it grows exponentially between attempts.
	QueryRetryAttempts uint          `mapstructure:"query_retry_attempts"`
	QueryRetryInterval time.Duration `mapstructure:"query_retry_interval"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/maka-stats")

	v.SetEnvPrefix("MAKASTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeJob))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("stats.write_batch_size", 500)
	v.SetDefault("stats.backfill_days", 3)
	v.SetDefault("stats.job_parallelism", 20)
	v.SetDefault("stats.cohort_windows", []int{1, 3, 7})
	v.SetDefault("stats.buckets.recent_max_age_days", 30)
	v.SetDefault("stats.query_retry_attempts", 3)
	v.SetDefault("stats.query_retry_interval", 500*time.Millisecond)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development and
// tests. This is useful for running scripts or other non-job entrypoints.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Stats: StatsConfig{
			WriteBatchSize:     500,
			BackfillDays:       3,
			JobParallelism:     20,
			CohortWindows:      []int{1, 3, 7},
			Buckets:            types.DefaultCohortBuckets(),
			QueryRetryAttempts: 3,
			QueryRetryInterval: 500 * time.Millisecond,
		},
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
