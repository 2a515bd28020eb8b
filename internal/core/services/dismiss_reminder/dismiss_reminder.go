package dismissreminder

import (
	"context"
	"errors"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/domain/sound"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
	"time"
)

type Input struct {
	ID reminder.ID
}

type Result struct {
	Occurrence time.Time
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	dismisser  schedule.Dismisser
	player     sound.Player
	// rescheduler carries the dismissal over to the background context.
	rescheduler reminder.Rescheduler
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	dismisser schedule.Dismisser,
	player sound.Player,
	rescheduler reminder.Rescheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if dismisser == nil {
		panic(e.NewNilArgumentError("dismisser"))
	}
	if player == nil {
		panic(e.NewNilArgumentError("player"))
	}
	if rescheduler == nil {
		panic(e.NewNilArgumentError("rescheduler"))
	}
	return &service{
		log:         log,
		unitOfWork:  unitOfWork,
		dismisser:   dismisser,
		player:      player,
		rescheduler: rescheduler,
	}
}

// Run acknowledges the last fired occurrence: the sound stops and pending repeats are dropped.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	_, err = uow.Reminders().GetByID(ctx, input.ID)
	uow.Rollback(ctx)
	if err != nil {
		if !errors.Is(err, reminder.ErrReminderDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.player.Stop(ctx)
	occurrence, err := s.dismisser.Dismiss(ctx, input.ID)
	if err != nil {
		return result, err
	}
	s.rescheduler.RequestReschedule(ctx)

	s.log.Info(
		ctx,
		"Reminder dismissed.",
		logging.Entry("reminderID", input.ID),
		logging.Entry("occurrence", occurrence),
	)
	result.Occurrence = occurrence
	return result, nil
}
