package updatereminder

import (
	"context"
	"errors"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
)

type Input struct {
	// Reminder replaces every mutable field of the stored record. Its Version
	// must match the stored one.
	Reminder reminder.Reminder
	// AdjustMinutes shifts Reminder.ReminderTime, wrapping around midnight.
	AdjustMinutes c.Optional[int]
}

type Result struct {
	Reminder reminder.Reminder
}

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
	return &service{
		log:         log,
		unitOfWork:  unitOfWork,
		rescheduler: rescheduler,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	update := input.Reminder
	if input.AdjustMinutes.IsPresent {
		update.ReminderTime = update.ReminderTime.Add(input.AdjustMinutes.Value)
	}
	if err := update.Validate(); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	updated, err := uow.Reminders().Update(ctx, update)
	if errors.Is(err, reminder.ErrReminderDoesNotExist) || errors.Is(err, reminder.ErrReminderVersionConflict) {
		s.log.Info(ctx, "Reminder is not updated.", logging.Entry("reminderID", update.ID), logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminder", updated))
		return result, err
	}

	s.rescheduler.RequestReschedule(ctx)
	s.log.Info(
		ctx,
		"Reminder successfully updated.",
		logging.Entry("reminderID", updated.ID),
		logging.Entry("version", updated.Version),
	)
	result.Reminder = updated
	return result, nil
}
