package deletereminder

import (
	"context"
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
)

type Input struct {
	ID reminder.ID
}

type Result struct{}

type service struct {
	log         logging.Logger
	unitOfWork  uow.UnitOfWork
	rescheduler reminder.Rescheduler
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	rescheduler reminder.Rescheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if rescheduler == nil {
		panic(e.NewNilArgumentError("rescheduler"))
	}
	return &service{log: log, unitOfWork: unitOfWork, rescheduler: rescheduler}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	err = uow.Reminders().Delete(ctx, input.ID)
	if errors.Is(err, reminder.ErrReminderDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.rescheduler.RequestReschedule(ctx)
	s.log.Info(ctx, "Reminder successfully deleted.", logging.Entry("reminderID", input.ID))
	return result, nil
}
