package service

import (
	"context"
	"sync"
	"time"

	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/tenant"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// Backfiller drives the multi-tenant, multi-day sweep. Pairs run with
// bounded parallelism to cap load on the shared sources; each (tenant, date)
// appears at most once per sweep, which keeps the replace strategy safe.
type Backfiller struct {
	cfg        *config.Configuration
	logger     *logger.Logger
	tenantRepo tenant.Repository
	runner     *JobRunner
}

func NewBackfiller(cfg *config.Configuration, tenantRepo tenant.Repository, runner *JobRunner, logger *logger.Logger) *Backfiller {
	return &Backfiller{
		cfg:        cfg,
		logger:     logger,
		tenantRepo: tenantRepo,
		runner:     runner,
	}
}

type backfillPair struct {
	tenantID string
	date     time.Time
}

// Run sweeps every tenant over the configured trailing days ending at
// endDate. Failed pairs are logged and counted, never retried in-sweep;
// rerunning them later is safe by idempotence.
func (b *Backfiller) Run(ctx context.Context, endDate time.Time) error {
	tenants, err := b.tenantRepo.ListTenantIDs(ctx)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not enumerate tenants for backfill").
			Mark(ierr.ErrDatabase)
	}
	if len(tenants) == 0 {
		b.logger.Warnw("no tenants found, nothing to backfill")
		return nil
	}

	days := b.cfg.Stats.BackfillDays
	if days <= 0 {
		days = 1
	}

	pairs := make([]backfillPair, 0, len(tenants)*days)
	for _, tenantID := range tenants {
		for offset := 0; offset < days; offset++ {
			pairs = append(pairs, backfillPair{
				tenantID: tenantID,
				date:     types.StartOfDay(endDate).AddDate(0, 0, -offset),
			})
		}
	}

	parallelism := b.cfg.Stats.JobParallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	b.logger.Infow("backfill starting",
		"tenants", len(tenants),
		"days", days,
		"pairs", len(pairs),
		"parallelism", parallelism)

	var mu sync.Mutex
	var failedPairs []string

	p := pool.New().WithMaxGoroutines(parallelism)
	for _, pair := range pairs {
		pair := pair
		p.Go(func() {
			if err := b.runner.RunAll(ctx, pair.tenantID, pair.date); err != nil {
				mu.Lock()
				failedPairs = append(failedPairs, pair.tenantID+"/"+types.FormatDate(pair.date))
				mu.Unlock()
			}
		})
	}
	p.Wait()

	b.logger.Infow("backfill finished",
		"pairs", len(pairs),
		"failed", len(failedPairs))

	if len(failedPairs) > 0 {
		return ierr.NewError("backfill completed with failures").
			WithHint("Rerun the listed tenant/date pairs").
			WithReportableDetails(map[string]interface{}{
				"failed_pairs": failedPairs,
			}).
			Mark(ierr.ErrSystem)
	}
	return nil
}
