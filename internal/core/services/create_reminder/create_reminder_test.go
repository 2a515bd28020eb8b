package createreminder

import (
	"context"
	"errors"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/logging"
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
	input       Input
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.rescheduler = reminder.NewFakeRescheduler()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		reminder.NewFakeIDGenerator(),
		suite.rescheduler,
		func() time.Time { return Now },
	)
	suite.input = Input{
		MealTime:     reminder.MealTimeLunch,
		ReminderTime: reminder.MustParseTimeOfDay("13:00"),
		Enabled:      true,
		Label:        "Lunch Time",
		SoundID:      c.Some("gentle"),
	}
}

func TestCreateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	// Exercise ---
	result, err := s.service.Run(context.Background(), s.input)

	// Verify ---
	s.Nil(err)
	s.Equal(reminder.ID("reminder-1"), result.Reminder.ID)
	s.Equal(uint32(1), result.Reminder.Version)
	s.True(result.Reminder.CreatedAt.Equal(Now))
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Equal(1, s.rescheduler.Count())
	s.Len(s.unitOfWork.Context.ReminderRepository.Snapshot(), 1)
}

func (s *testSuite) TestInvalidRepeat() {
	cases := []struct {
		id       string
		interval c.Optional[uint32]
		count    c.Optional[uint32]
	}{
		{id: "no interval", count: c.Some[uint32](3)},
		{id: "no count", interval: c.Some[uint32](10)},
		{id: "longer than a day", interval: c.Some[uint32](60), count: c.Some[uint32](24)},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			input := s.input
			input.Repeat = true
			input.RepeatInterval = testcase.interval
			input.MaxRepeats = testcase.count

			_, err := s.service.Run(context.Background(), input)

			s.ErrorIs(err, reminder.ErrReminderInvalidRepeat)
			s.Equal(0, s.rescheduler.Count())
		})
	}
}

func (s *testSuite) TestMissingMealTime() {
	s.input.MealTime = reminder.MealTime{}

	_, err := s.service.Run(context.Background(), s.input)

	s.NotNil(err)
	s.Equal(0, s.unitOfWork.BeginCalls)
}

func (s *testSuite) TestRepositoryError() {
	s.unitOfWork.Context.ReminderRepository.CreateError = errors.New("disk full")

	_, err := s.service.Run(context.Background(), s.input)

	s.ErrorIs(err, s.unitOfWork.Context.ReminderRepository.CreateError)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.True(s.unitOfWork.Context.WasRollbackCalled)
	s.Equal(0, s.rescheduler.Count())
}
