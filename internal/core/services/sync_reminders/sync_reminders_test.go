package syncreminders

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/clock"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/durable"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/services"
	schedulereminders "mealremind/internal/core/services/schedule_reminders"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type redeliverer struct {
	failing map[reminder.ID]bool
	calls   []reminder.ID
}

func (r *redeliverer) Deliver(ctx context.Context, arm schedule.Arm) error {
	r.calls = append(r.calls, arm.Reminder.ID)
	if r.failing[arm.Reminder.ID] {
		return errors.New("offline")
	}
	return nil
}

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	store       *durable.FakeStore
	clock       *clock.FakeClock
	failed      *notification.FakeFailedQueue
	redeliverer *redeliverer
	firer       *schedule.FakeFirer
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.store = durable.NewFakeStore()
	suite.clock = clock.NewFakeClock(Now)
	suite.failed = notification.NewFakeFailedQueue()
	suite.redeliverer = &redeliverer{failing: make(map[reminder.ID]bool)}
	suite.useStore()
}

func TestSyncRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func meal(id reminder.ID, m reminder.MealTime, at string) reminder.Reminder {
	return reminder.Reminder{
		ID:           id,
		MealTime:     m,
		ReminderTime: reminder.MustParseTimeOfDay(at),
		Enabled:      true,
		Label:        "Meal",
		Version:      1,
	}
}

func (s *testSuite) TestSnapshotReplacesDurableStore() {
	// Setup ---
	snapshot := durable.Snapshot{Reminders: []reminder.Reminder{
		meal("lunch", reminder.MealTimeLunch, "13:00"),
		meal("dinner", reminder.MealTimeDinner, "20:00"),
	}}

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Reason: "sync", Snapshot: c.Some(snapshot)})

	// Verify ---
	s.Nil(err)
	s.Equal(2, result.Armed)
	s.Equal(1, s.store.Replaced)
	s.Equal(2, s.clock.Pending())
}

func (s *testSuite) TestWithoutSnapshotUsesStoredReminders() {
	s.store = durable.NewFakeStore(meal("lunch", reminder.MealTimeLunch, "13:00"))
	s.useStore()

	result, err := s.service.Run(context.Background(), Input{Reason: "periodic"})

	s.Nil(err)
	s.Equal(1, result.Armed)
	s.Equal(0, s.store.Replaced)
}

func (s *testSuite) TestDrainDeletesDeliveredKeepsFailing() {
	// Setup ---
	ctx := context.Background()
	for _, id := range []reminder.ID{"a", "b", "c"} {
		_, err := s.failed.Push(ctx, notification.Failed{
			Reminder: meal(id, reminder.MealTimeLunch, "13:00"),
			Kind:     schedule.KindMain,
			At:       Now,
		})
		s.Nil(err)
	}
	s.redeliverer.failing["b"] = true

	// Exercise ---
	result, err := s.service.Run(ctx, Input{Reason: "periodic"})

	// Verify ---
	s.Nil(err)
	s.Equal(2, result.Redelivered)
	s.Equal(1, result.StillFailed)
	s.Equal([]reminder.ID{"a", "b", "c"}, s.redeliverer.calls)
	items, err := s.failed.List(ctx)
	s.Nil(err)
	s.Len(items, 1)
	s.Equal(reminder.ID("b"), items[0].Reminder.ID)
}

func (s *testSuite) TestReplaceErrorAbortsSync() {
	s.store.ReplaceError = errors.New("redis down")

	_, err := s.service.Run(
		context.Background(),
		Input{Snapshot: c.Some(durable.Snapshot{
			Reminders: []reminder.Reminder{meal("lunch", reminder.MealTimeLunch, "13:00")},
		})},
	)

	s.ErrorIs(err, s.store.ReplaceError)
	s.Equal(0, s.clock.Pending())
}

func (s *testSuite) TestSnapshotDismissalDropsBackgroundRepeats() {
	// Setup ---
	ctx := context.Background()
	lunch := meal("lunch", reminder.MealTimeLunch, "13:00")
	lunch.Repeat = true
	lunch.RepeatInterval = c.Some[uint32](10)
	lunch.MaxRepeats = c.Some[uint32](3)
	snapshot := durable.Snapshot{Reminders: []reminder.Reminder{lunch}}
	_, err := s.service.Run(ctx, Input{Reason: "sync", Snapshot: c.Some(snapshot)})
	s.Nil(err)
	s.clock.Advance(3*time.Hour + 5*time.Minute)

	// Exercise ---
	snapshot.Dismissed = map[reminder.ID]time.Time{"lunch": time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)}
	result, err := s.service.Run(ctx, Input{Reason: "sync", Snapshot: c.Some(snapshot)})
	s.Nil(err)
	s.clock.Advance(time.Hour)

	// Verify ---
	s.Equal(1, result.Armed)
	s.Equal([]schedule.Kind{schedule.KindMain}, s.firer.Kinds())
}

func (s *testSuite) useStore() {
	s.firer = schedule.NewFakeFirer()
	pass := schedulereminders.New(
		s.logger,
		s.store,
		schedule.NewFakeTimerSet(s.clock),
		s.firer,
		s.clock.Now,
	)
	s.service = New(s.logger, s.store, pass, s.failed, s.redeliverer)
}
