package testutil

import (
	"context"
	"time"

	"github.com/maka2016/maka-stats/internal/config"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories shared by the service suites.
// Concrete types so tests can seed and fail them directly.
type Stores struct {
	EventRepo       *InMemoryEventStore
	UserRepo        *InMemoryUserStore
	AttributionRepo *InMemoryAttributionStore
	WorkRepo        *InMemoryWorkStore
	LedgerRepo      *InMemoryLedgerStore
	TenantRepo      *InMemoryTenantStore
	StatsRepo       *InMemoryStatsStore
}

// BaseServiceTestSuite provides common wiring for the service test suites.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctx = types.SetTenantID(s.ctx, "tenant_test")
	s.stores = Stores{
		EventRepo:       NewInMemoryEventStore(),
		UserRepo:        NewInMemoryUserStore(),
		AttributionRepo: NewInMemoryAttributionStore(),
		WorkRepo:        NewInMemoryWorkStore(),
		LedgerRepo:      NewInMemoryLedgerStore(),
		TenantRepo:      NewInMemoryTenantStore(),
		StatsRepo:       NewInMemoryStatsStore(),
	}
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}
