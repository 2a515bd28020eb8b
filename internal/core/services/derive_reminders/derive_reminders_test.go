package derivereminders

import (
	"context"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/mealplan"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	unitOfWork  *uow.FakeUnitOfWork
	rescheduler *reminder.FakeRescheduler
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.setup()
}

func (suite *testSuite) setup(reminders ...reminder.Reminder) {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork(reminders...)
	suite.rescheduler = reminder.NewFakeRescheduler()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		reminder.NewFakeIDGenerator(),
		suite.rescheduler,
		func() time.Time { return Now },
	)
}

func TestDeriveRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreatesForNonEmptySlots() {
	// Setup ---
	plan := mealplan.Plan{
		Meals: map[reminder.MealTime]int{
			reminder.MealTimeBreakfast: 0,
			reminder.MealTimeLunch:     2,
			reminder.MealTimeDinner:    1,
		},
	}

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Plan: plan})

	// Verify ---
	s.Nil(err)
	s.Len(result.Created, 2)
	s.Empty(result.Updated)

	stored := s.unitOfWork.Context.ReminderRepository.Snapshot()
	s.Len(stored, 2)
	byMeal := map[reminder.MealTime]reminder.Reminder{}
	for _, r := range stored {
		byMeal[r.MealTime] = r
	}
	s.Equal("13:00", byMeal[reminder.MealTimeLunch].ReminderTime.String())
	s.Equal("Lunch Time", byMeal[reminder.MealTimeLunch].Label)
	dinner := byMeal[reminder.MealTimeDinner]
	s.Equal("20:00", dinner.ReminderTime.String())
	s.Equal("Dinner Time", dinner.Label)
	s.True(dinner.Enabled)
	s.Equal(reminder.DEFAULT_SOUND_ID, dinner.EffectiveSoundID())
	s.Equal(1, s.rescheduler.Count())
	s.Equal(1, s.unitOfWork.BeginCalls)
}

func (s *testSuite) TestSecondRunCreatesNothing() {
	plan := mealplan.Plan{
		Meals: map[reminder.MealTime]int{
			reminder.MealTimeLunch:  1,
			reminder.MealTimeDinner: 1,
		},
	}
	_, err := s.service.Run(context.Background(), Input{Plan: plan})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{Plan: plan})

	s.Nil(err)
	s.False(result.Changed())
	s.Len(s.unitOfWork.Context.ReminderRepository.Snapshot(), 2)
	s.Equal(1, s.rescheduler.Count())
}

func (s *testSuite) TestResyncsTimeOnly() {
	// Setup ---
	existing := reminder.Reminder{
		ID:             "breakfast",
		MealTime:       reminder.MealTimeBreakfast,
		ReminderTime:   reminder.MustParseTimeOfDay("08:00"),
		Enabled:        false,
		Label:          "My Breakfast",
		SoundID:        c.Some("bell"),
		AdvanceWarning: c.Some[uint32](5),
		Version:        1,
	}
	s.setup(existing)
	plan := mealplan.Plan{
		Meals: map[reminder.MealTime]int{reminder.MealTimeBreakfast: 1},
		Schedule: map[reminder.MealTime]reminder.Slot{
			reminder.MealTimeBreakfast: {Time: reminder.MustParseTimeOfDay("08:30")},
		},
	}

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Plan: plan})

	// Verify ---
	s.Nil(err)
	s.Empty(result.Created)
	s.Len(result.Updated, 1)
	stored := s.unitOfWork.Context.ReminderRepository.Snapshot()
	s.Len(stored, 1)
	s.Equal("08:30", stored[0].ReminderTime.String())
	s.False(stored[0].Enabled)
	s.Equal("My Breakfast", stored[0].Label)
	s.Equal("bell", stored[0].EffectiveSoundID())
	s.Equal(existing.AdvanceWarning, stored[0].AdvanceWarning)
	s.Equal(1, s.rescheduler.Count())
}

func (s *testSuite) TestNoChangeNoSignal() {
	s.setup(reminder.Reminder{
		ID:           "lunch",
		MealTime:     reminder.MealTimeLunch,
		ReminderTime: reminder.MustParseTimeOfDay("13:00"),
		Version:      1,
	})
	plan := mealplan.Plan{Meals: map[reminder.MealTime]int{reminder.MealTimeLunch: 3}}

	result, err := s.service.Run(context.Background(), Input{Plan: plan})

	s.Nil(err)
	s.False(result.Changed())
	s.Equal(0, s.rescheduler.Count())
	s.False(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestEmptyPlanIsNoop() {
	s.setup(reminder.Reminder{ID: "lunch", MealTime: reminder.MealTimeLunch, Version: 1})

	result, err := s.service.Run(context.Background(), Input{Plan: mealplan.Plan{}})

	s.Nil(err)
	s.False(result.Changed())
	s.Len(s.unitOfWork.Context.ReminderRepository.Snapshot(), 1)
}
