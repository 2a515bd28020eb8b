package durable

import (
	"context"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/durable"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/redis/redistest"
	"mealremind/internal/schema"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	client *redis.Client
	logger *logging.FakeLogger
	store  *Store
}

func (suite *testSuite) SetupSuite() {
	suite.client = redistest.CreateTestClient()
}

func (suite *testSuite) TearDownSuite() {
	suite.client.Close()
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.store = New(suite.client, suite.logger, "test")
}

func (suite *testSuite) TearDownTest() {
	redistest.Flush(suite.client)
}

func TestRedisDurableStore(t *testing.T) {
	redistest.SkipWithoutRedis(t)
	suite.Run(t, new(testSuite))
}

func newReminder(id reminder.ID, m reminder.MealTime, at string, enabled bool) reminder.Reminder {
	return reminder.Reminder{
		ID:           id,
		MealTime:     m,
		ReminderTime: reminder.MustParseTimeOfDay(at),
		Enabled:      enabled,
		Label:        "Meal Time",
		SoundID:      c.Some("default"),
		Version:      1,
		CreatedAt:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *testSuite) TestMigrateFromScratch() {
	ctx := context.Background()

	from, to, err := s.store.Migrate(ctx)
	s.Nil(err)
	s.Equal(0, from)
	s.Equal(durable.SCHEMA_VERSION, to)

	from, to, err = s.store.Migrate(ctx)
	s.Nil(err)
	s.Equal(durable.SCHEMA_VERSION, from)
	s.Equal(durable.SCHEMA_VERSION, to)
}

func (s *testSuite) TestMigrateV1BuildsIndexes() {
	// Setup ---
	ctx := context.Background()
	lunch := schema.EncodeReminder(newReminder("r-1", reminder.MealTimeLunch, "13:00", true))
	data, err := lunch.Marshal()
	s.Require().Nil(err)
	s.Require().Nil(s.client.HSet(ctx, "test:reminders", "r-1", data).Err())
	s.Require().Nil(s.client.Set(ctx, "test:schema", 1, 0).Err())

	// Exercise ---
	from, to, err := s.store.Migrate(ctx)

	// Verify ---
	s.Nil(err)
	s.Equal(1, from)
	s.Equal(2, to)
	reminders, err := s.store.ListReminders(ctx)
	s.Nil(err)
	s.Len(reminders, 1)
	s.Equal(reminder.ID("r-1"), reminders[0].ID)
}

func (s *testSuite) TestMigrateRejectsNewerSchema() {
	ctx := context.Background()
	s.Require().Nil(s.client.Set(ctx, "test:schema", durable.SCHEMA_VERSION+1, 0).Err())

	_, _, err := s.store.Migrate(ctx)

	s.ErrorIs(err, durable.ErrSchemaTooNew)
}

func (s *testSuite) TestReplaceAllAndList() {
	// Setup ---
	ctx := context.Background()
	_, _, err := s.store.Migrate(ctx)
	s.Require().Nil(err)
	s.Require().Nil(s.store.ReplaceAll(ctx, []reminder.Reminder{
		newReminder("old", reminder.MealTimeMorning, "07:00", true),
	}))

	// Exercise ---
	err = s.store.ReplaceAll(ctx, []reminder.Reminder{
		newReminder("dinner", reminder.MealTimeDinner, "20:00", true),
		newReminder("breakfast", reminder.MealTimeBreakfast, "08:00", true),
		newReminder("lunch", reminder.MealTimeLunch, "13:00", false),
	})

	// Verify ---
	s.Nil(err)
	reminders, err := s.store.ListReminders(ctx)
	s.Nil(err)
	ids := []reminder.ID{}
	for _, r := range reminders {
		ids = append(ids, r.ID)
	}
	s.Equal([]reminder.ID{"breakfast", "dinner"}, ids)
	lunchMembers, err := s.client.SMembers(ctx, "test:by-meal:lunch").Result()
	s.Nil(err)
	s.Equal([]string{"lunch"}, lunchMembers)
	morningMembers, err := s.client.SMembers(ctx, "test:by-meal:morning").Result()
	s.Nil(err)
	s.Empty(morningMembers)
}

func (s *testSuite) TestReplaceAllWithEmptySnapshot() {
	ctx := context.Background()
	s.Require().Nil(s.store.ReplaceAll(ctx, []reminder.Reminder{
		newReminder("r-1", reminder.MealTimeLunch, "13:00", true),
	}))

	s.Nil(s.store.ReplaceAll(ctx, nil))

	reminders, err := s.store.ListReminders(ctx)
	s.Nil(err)
	s.Empty(reminders)
}

func (s *testSuite) TestListSkipsUndecodableRecord() {
	// Setup ---
	ctx := context.Background()
	s.Require().Nil(s.store.ReplaceAll(ctx, []reminder.Reminder{
		newReminder("breakfast", reminder.MealTimeBreakfast, "08:00", true),
		newReminder("dinner", reminder.MealTimeDinner, "20:00", true),
	}))
	s.Require().Nil(s.client.HSet(ctx, "test:reminders", "breakfast", "{not json").Err())

	// Exercise ---
	reminders, err := s.store.ListReminders(ctx)

	// Verify ---
	s.Nil(err)
	s.Require().Len(reminders, 1)
	s.Equal(reminder.ID("dinner"), reminders[0].ID)
	s.Equal(1, s.logger.CountLevel(logging.WARNING))
}
