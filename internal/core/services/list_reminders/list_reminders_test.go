package listreminders

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReminders(t *testing.T) {
	unitOfWork := uow.NewFakeUnitOfWork(
		reminder.Reminder{ID: "lunch", MealTime: reminder.MealTimeLunch, Enabled: true, Version: 1},
		reminder.Reminder{ID: "dinner", MealTime: reminder.MealTimeDinner, Enabled: false, Version: 1},
	)
	service := New(logging.NewFakeLogger(), unitOfWork)

	all, err := service.Run(context.Background(), Input{})
	require.Nil(t, err)
	assert.Len(t, all.Reminders, 2)

	enabled, err := Source{Service: service}.ListReminders(context.Background())
	require.Nil(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, reminder.ID("lunch"), enabled[0].ID)
	assert.True(t, unitOfWork.Context.WasRollbackCalled)
}

func TestListRemindersError(t *testing.T) {
	unitOfWork := uow.NewFakeUnitOfWork()
	unitOfWork.Context.ReminderRepository.ListError = errors.New("closed")
	logger := logging.NewFakeLogger()

	_, err := New(logger, unitOfWork).Run(context.Background(), Input{})

	assert.ErrorIs(t, err, unitOfWork.Context.ReminderRepository.ListError)
	assert.Equal(t, 1, logger.CountLevel(logging.ERROR))
}
