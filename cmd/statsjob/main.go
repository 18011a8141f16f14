package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/maka2016/maka-stats/internal/clickhouse"
	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
	"github.com/maka2016/maka-stats/internal/repository"
	"github.com/maka2016/maka-stats/internal/service"
	"github.com/maka2016/maka-stats/internal/types"
)

const usage = `usage: statsjob run [tenant] [date]

  run <tenant> <date>   run all statistics jobs for one tenant and day (YYYY-MM-DD)
  run <tenant>          run for today
  run                   backfill every tenant over the configured trailing days
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 || args[0] != "run" {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command")
	}

	// Missing .env is fine; env vars and defaults still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	ctx := context.Background()

	chStore, err := clickhouse.NewClickHouseStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to the event log store: %w", err)
	}
	defer chStore.Close()
	if err := chStore.Ping(ctx); err != nil {
		return fmt.Errorf("event log store unreachable: %w", err)
	}

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to the entity store: %w", err)
	}
	defer db.Close()

	runner := service.NewJobRunner(service.JobRunnerParams{
		Config:          cfg,
		Logger:          logger,
		EventRepo:       repository.NewEventRepository(chStore, cfg, logger),
		UserRepo:        repository.NewUserRepository(db, logger),
		AttributionRepo: repository.NewAttributionRepository(db, logger),
		WorkRepo:        repository.NewWorkRepository(db, logger),
		LedgerRepo:      repository.NewLedgerRepository(db, logger),
		StatsRepo:       repository.NewStatsRepository(db, cfg, logger),
	})

	switch len(args) {
	case 1:
		backfiller := service.NewBackfiller(cfg, repository.NewTenantRepository(db, logger), runner, logger)
		return backfiller.Run(ctx, time.Now().UTC())
	case 2:
		return runTenant(ctx, runner, args[1], time.Now().UTC())
	default:
		date, err := types.ParseDate(args[2])
		if err != nil {
			return err
		}
		return runTenant(ctx, runner, args[1], date)
	}
}

func runTenant(ctx context.Context, runner *service.JobRunner, tenantID string, date time.Time) error {
	ctx = types.SetTenantID(ctx, tenantID)
	ctx = types.SetJobDate(ctx, types.FormatDate(date))
	return runner.RunAll(ctx, tenantID, date)
}
