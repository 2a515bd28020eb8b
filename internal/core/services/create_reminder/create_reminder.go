package createreminder

import (
	"context"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
	"time"
)

type Input struct {
	MealTime       reminder.MealTime
	ReminderTime   reminder.TimeOfDay
	Enabled        bool
	Label          string
	SoundID        c.Optional[string]
	AdvanceWarning c.Optional[uint32]
	Repeat         bool
	RepeatInterval c.Optional[uint32]
	MaxRepeats     c.Optional[uint32]
}

type Result struct {
	Reminder reminder.Reminder
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	createInput := reminder.CreateInput{
		ID:             s.idGenerator.GenerateReminderID(),
		MealTime:       input.MealTime,
		ReminderTime:   input.ReminderTime,
		Enabled:        input.Enabled,
		Label:          input.Label,
		SoundID:        input.SoundID,
		AdvanceWarning: input.AdvanceWarning,
		Repeat:         input.Repeat,
		RepeatInterval: input.RepeatInterval,
		MaxRepeats:     input.MaxRepeats,
		CreatedAt:      s.now(),
	}
	if err := createInput.Validate(); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	created, err := uow.Reminders().Create(ctx, createInput)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminder", created))
		return result, err
	}

	s.rescheduler.RequestReschedule(ctx)
	s.log.Info(ctx, "Reminder successfully created.", logging.Entry("reminderID", created.ID))
	result.Reminder = created
	return result, nil
}
