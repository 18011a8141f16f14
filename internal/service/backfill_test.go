package service

import (
	"testing"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/events"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/testutil"
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/stretchr/testify/suite"
)

type BackfillSuite struct {
	testutil.BaseServiceTestSuite
}

func TestBackfillSuite(t *testing.T) {
	suite.Run(t, new(BackfillSuite))
}

func (s *BackfillSuite) newBackfiller(tenants ...string) *Backfiller {
	stores := s.GetStores()
	runner := NewJobRunner(JobRunnerParams{
		Config:          s.GetConfig(),
		Logger:          s.GetLogger(),
		EventRepo:       stores.EventRepo,
		UserRepo:        stores.UserRepo,
		AttributionRepo: stores.AttributionRepo,
		WorkRepo:        stores.WorkRepo,
		LedgerRepo:      stores.LedgerRepo,
		StatsRepo:       stores.StatsRepo,
	})
	return NewBackfiller(s.GetConfig(), testutil.NewInMemoryTenantStore(tenants...), runner, s.GetLogger())
}

func (s *BackfillSuite) TestBackfillSweepsTenantsAndDays() {
	end := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	stores := s.GetStores()

	for _, tenantID := range []string{"acme", "globex"} {
		for offset := 0; offset < s.GetConfig().Stats.BackfillDays; offset++ {
			day := types.StartOfDay(end).AddDate(0, 0, -offset)
			stores.EventRepo.InsertEvent(&events.Event{
				TenantID: tenantID, EventName: types.EventClick,
				ObjectType: types.ObjectTypeTemplateItem,
				DistinctID: "d", UID: 9, Platform: "web",
				Timestamp: day.Add(time.Hour),
			})
		}
	}

	s.NoError(s.newBackfiller("acme", "globex").Run(s.GetContext(), end))

	for _, tenantID := range []string{"acme", "globex"} {
		for offset := 0; offset < s.GetConfig().Stats.BackfillDays; offset++ {
			day := types.FormatDate(types.StartOfDay(end).AddDate(0, 0, -offset))
			s.NotEmpty(stores.StatsRepo.DailyRows(tenantID, day),
				"expected rows for %s/%s", tenantID, day)
		}
	}
}

func (s *BackfillSuite) TestBackfillNoTenants() {
	s.NoError(s.newBackfiller().Run(s.GetContext(), time.Now().UTC()))
}

func (s *BackfillSuite) TestBackfillTenantListFailure() {
	backfiller := s.newBackfiller()
	failing := testutil.NewInMemoryTenantStore("acme")
	failing.FailWith(ierr.NewError("entity store down").Mark(ierr.ErrDatabase))
	backfiller.tenantRepo = failing

	err := backfiller.Run(s.GetContext(), time.Now().UTC())
	s.Error(err)
	s.True(ierr.IsDatabase(err))
}

func (s *BackfillSuite) TestBackfillReportsFailedPairs() {
	stores := s.GetStores()
	stores.StatsRepo.FailWith(ierr.NewError("sink down").Mark(ierr.ErrDatabase))
	stores.EventRepo.InsertEvent(&events.Event{
		TenantID: "acme", EventName: types.EventClick,
		ObjectType: types.ObjectTypeTemplateItem,
		DistinctID: "d", UID: 9, Platform: "web",
		Timestamp: time.Now().UTC(),
	})

	err := s.newBackfiller("acme").Run(s.GetContext(), time.Now().UTC())
	s.Error(err)
	s.True(ierr.IsSystem(err))
}
