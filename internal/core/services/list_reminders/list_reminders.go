package listreminders

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
)

type Input struct {
	EnabledOnly bool
}

type Result struct {
	Reminders []reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(log logging.Logger, unitOfWork uow.UnitOfWork) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	reminders, err := uow.Reminders().List(ctx, reminder.ListOptions{EnabledOnly: input.EnabledOnly})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminders = reminders
	return result, nil
}

// Source adapts the service to schedule.Source, listing enabled reminders only.
type Source struct {
	Service services.Service[Input, Result]
}

func (s Source) ListReminders(ctx context.Context) ([]reminder.Reminder, error) {
	result, err := s.Service.Run(ctx, Input{EnabledOnly: true})
	return result.Reminders, err
}
