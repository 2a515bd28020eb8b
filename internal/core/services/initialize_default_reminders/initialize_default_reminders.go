package initializedefaultreminders

import (
	"context"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Created []reminder.Reminder
}

type service struct {
	log         logging.Logger
	unitOfWork  uow.UnitOfWork
	idGenerator reminder.IDGenerator
	rescheduler reminder.Rescheduler
	now         func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	idGenerator reminder.IDGenerator,
	rescheduler reminder.Rescheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if idGenerator == nil {
		panic(e.NewNilArgumentError("idGenerator"))
	}
	if rescheduler == nil {
		panic(e.NewNilArgumentError("rescheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:         log,
		unitOfWork:  unitOfWork,
		idGenerator: idGenerator,
		rescheduler: rescheduler,
		now:         now,
	}
}

// Run seeds the default reminders when the store is empty. A non-empty store is left untouched.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Reminders().Lock(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	existing, err := uow.Reminders().List(ctx, reminder.ListOptions{})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if len(existing) > 0 {
		return result, nil
	}

	now := s.now()
	for _, createInput := range reminder.DefaultReminders() {
		createInput.ID = s.idGenerator.GenerateReminderID()
		createInput.CreatedAt = now
		created, err := uow.Reminders().Create(ctx, createInput)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("mealTime", createInput.MealTime.String()))
			return Result{}, err
		}
		result.Created = append(result.Created, created)
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return Result{}, err
	}

	s.rescheduler.RequestReschedule(ctx)
	s.log.Info(ctx, "Default reminders created.", logging.Entry("count", len(result.Created)))
	return result, nil
}
