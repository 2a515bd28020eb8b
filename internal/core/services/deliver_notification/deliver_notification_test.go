package delivernotification

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/clock"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	displayer *notification.FakeDisplayer
	wakeLock  *notification.FakeWakeLock
	failed    *notification.FakeFailedQueue
	clock     *clock.FakeClock
	deliverer *Deliverer
	arm       schedule.Arm
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.displayer = notification.NewFakeDisplayer()
	suite.wakeLock = notification.NewFakeWakeLock()
	suite.failed = notification.NewFakeFailedQueue()
	suite.clock = clock.NewFakeClock(Now)
	suite.deliverer = New(suite.logger, suite.displayer, suite.wakeLock, suite.failed, suite.clock, RETRY_DELAY)
	suite.arm = schedule.Arm{
		Reminder: reminder.Reminder{
			ID:           "lunch",
			MealTime:     reminder.MealTimeLunch,
			ReminderTime: reminder.MustParseTimeOfDay("13:00"),
			Enabled:      true,
			Label:        "Lunch Time",
			Version:      1,
		},
		Kind:       schedule.KindMain,
		Occurrence: Now,
		FireAt:     Now,
	}
}

func TestDeliverNotification(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestDeliveredFirstTime() {
	err := s.deliverer.Fire(context.Background(), s.arm)

	s.Nil(err)
	s.Len(s.displayer.Shown(), 1)
	s.Equal([]string{"lunch"}, s.wakeLock.Acquired)
	s.Equal(1, s.wakeLock.Released)
	s.Equal(0, s.clock.Pending())
}

func (s *testSuite) TestRetrySucceeds() {
	// Setup ---
	s.displayer.Errors = []error{errors.New("offline")}

	// Exercise ---
	err := s.deliverer.Fire(context.Background(), s.arm)
	s.Nil(err)
	s.Equal(0, s.wakeLock.Released)
	s.clock.Advance(RETRY_DELAY)

	// Verify ---
	s.Equal(2, s.displayer.Calls())
	s.Len(s.displayer.Shown(), 1)
	s.Equal(0, s.failed.Len())
	s.Equal(1, s.wakeLock.Released)
}

func (s *testSuite) TestSecondFailureIsQueued() {
	// Setup ---
	s.displayer.Errors = []error{errors.New("offline"), errors.New("still offline")}

	// Exercise ---
	err := s.deliverer.Fire(context.Background(), s.arm)
	s.Nil(err)
	s.clock.Advance(time.Second)
	s.Equal(0, s.failed.Len())
	s.clock.Advance(RETRY_DELAY)

	// Verify ---
	items, err := s.failed.List(context.Background())
	s.Nil(err)
	s.Len(items, 1)
	s.Equal(reminder.ID("lunch"), items[0].Reminder.ID)
	s.Equal(schedule.KindMain, items[0].Kind)
	s.Equal("still offline", items[0].Error)
	s.True(items[0].At.Equal(Now.Add(RETRY_DELAY)))
}

func (s *testSuite) TestWakeLockFailureDoesNotFailDelivery() {
	s.wakeLock.AcquireError = errors.New("redis down")

	err := s.deliverer.Fire(context.Background(), s.arm)

	s.Nil(err)
	s.Len(s.displayer.Shown(), 1)
	s.Equal(1, s.logger.CountLevel(logging.WARNING))
}
