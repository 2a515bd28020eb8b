package activatebackground

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/asset"
	"mealremind/internal/core/domain/clock"
	"mealremind/internal/core/domain/durable"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/services"
	precacheassets "mealremind/internal/core/services/precache_assets"
	purgeassetcaches "mealremind/internal/core/services/purge_asset_caches"
	schedulereminders "mealremind/internal/core/services/schedule_reminders"
	syncreminders "mealremind/internal/core/services/sync_reminders"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const GENERATION = "mealremind-cache-v1"

type noopRedeliverer struct{}

func (noopRedeliverer) Deliver(ctx context.Context, arm schedule.Arm) error { return nil }

type testSuite struct {
	suite.Suite
	store    *durable.FakeStore
	periodic *schedule.FakePeriodicWake
	cache    *asset.FakeCache
	clock    *clock.FakeClock
	service  services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	logger := logging.NewFakeLogger()
	suite.clock = clock.NewFakeClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	suite.store = durable.NewFakeStore(reminder.Reminder{
		ID:           "lunch",
		MealTime:     reminder.MealTimeLunch,
		ReminderTime: reminder.MustParseTimeOfDay("13:00"),
		Enabled:      true,
		Version:      1,
	})
	suite.periodic = schedule.NewFakePeriodicWake()
	suite.cache = asset.NewFakeCache()
	_ = suite.cache.Put(context.Background(), "mealremind-cache-v0", "/", asset.Response{Status: 200})
	origin := asset.NewFakeOrigin(map[string]asset.Response{"/": {Status: 200}})

	pass := schedulereminders.New(
		logger,
		suite.store,
		schedule.NewFakeTimerSet(suite.clock),
		schedule.NewFakeFirer(),
		suite.clock.Now,
	)
	suite.service = New(
		logger,
		suite.store,
		suite.periodic,
		precacheassets.New(logger, origin, suite.cache, GENERATION),
		purgeassetcaches.New(logger, suite.cache, GENERATION),
		syncreminders.New(logger, suite.store, pass, notification.NewFakeFailedQueue(), noopRedeliverer{}),
	)
}

func TestActivateBackground(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestActivation() {
	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{PeriodicEnabled: true})

	// Verify ---
	s.Nil(err)
	s.Equal(0, result.SchemaFrom)
	s.Equal(durable.SCHEMA_VERSION, result.SchemaTo)
	s.True(result.PeriodicArmed)
	s.Contains(s.periodic.Registered, PERIODIC_TAG)
	s.Equal(1, result.Precached)
	s.Equal(1, result.DroppedCaches)
	s.Equal(1, result.ArmedAfterSync)
	s.Equal(1, s.clock.Pending())
}

func (s *testSuite) TestPeriodicNotGranted() {
	result, err := s.service.Run(context.Background(), Input{PeriodicEnabled: false})

	s.Nil(err)
	s.False(result.PeriodicArmed)
	s.Empty(s.periodic.Registered)
}

func (s *testSuite) TestPeriodicRegistrationFailureIsNotFatal() {
	s.periodic.Err = errors.New("scheduler stopped")

	result, err := s.service.Run(context.Background(), Input{PeriodicEnabled: true})

	s.Nil(err)
	s.False(result.PeriodicArmed)
	s.Equal(1, result.ArmedAfterSync)
}

func (s *testSuite) TestMigrationFailureIsFatal() {
	s.store.MigrateError = errors.New("schema too new")

	_, err := s.service.Run(context.Background(), Input{PeriodicEnabled: true})

	s.ErrorIs(err, s.store.MigrateError)
	s.Equal(0, s.clock.Pending())
}

func (s *testSuite) TestPeriodicWakeRunsSync() {
	_, err := s.service.Run(context.Background(), Input{PeriodicEnabled: true})
	s.Nil(err)

	s.periodic.Registered[PERIODIC_TAG](context.Background())

	s.Equal(1, s.clock.Pending())
}
