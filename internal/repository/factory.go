package repository

import (
	"github.com/maka2016/maka-stats/internal/clickhouse"
	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/domain/attribution"
	"github.com/maka2016/maka-stats/internal/domain/events"
	"github.com/maka2016/maka-stats/internal/domain/ledger"
	"github.com/maka2016/maka-stats/internal/domain/stats"
	"github.com/maka2016/maka-stats/internal/domain/tenant"
	"github.com/maka2016/maka-stats/internal/domain/user"
	"github.com/maka2016/maka-stats/internal/domain/work"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
	clickhouseRepo "github.com/maka2016/maka-stats/internal/repository/clickhouse"
	postgresRepo "github.com/maka2016/maka-stats/internal/repository/postgres"
)

func NewEventRepository(store *clickhouse.ClickHouseStore, cfg *config.Configuration, logger *logger.Logger) events.Repository {
	return clickhouseRepo.NewEventRepository(store, cfg, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAttributionRepository(db *postgres.DB, logger *logger.Logger) attribution.Repository {
	return postgresRepo.NewAttributionRepository(db, logger)
}

func NewWorkRepository(db *postgres.DB, logger *logger.Logger) work.Repository {
	return postgresRepo.NewWorkRepository(db, logger)
}

func NewLedgerRepository(db *postgres.DB, logger *logger.Logger) ledger.Repository {
	return postgresRepo.NewLedgerRepository(db, logger)
}

func NewTenantRepository(db *postgres.DB, logger *logger.Logger) tenant.Repository {
	return postgresRepo.NewTenantRepository(db, logger)
}

func NewStatsRepository(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) stats.Repository {
	return postgresRepo.NewStatsRepository(db, cfg, logger)
}
