package derivereminders

import (
	"context"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/mealplan"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/core/services"
	"time"
)

type Input struct {
	Plan mealplan.Plan
}

type Result struct {
	Created []reminder.Reminder
	Updated []reminder.Reminder
}

func (r Result) Changed() bool {
	return len(r.Created)+len(r.Updated) > 0
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

// Run makes sure every non-empty meal slot has a reminder at the slot's time.
// Existing reminders only get their time re-synced. Reminders are never deleted.
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

	for _, mealTime := range reminder.MealTimes {
		if !input.Plan.HasItems(mealTime) {
			continue
		}
		slot := input.Plan.SlotFor(mealTime)

		existing, err := uow.Reminders().List(ctx, reminder.ListOptions{MealTimeEquals: c.Some(mealTime)})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("mealTime", mealTime.String()))
			return Result{}, err
		}

		if len(existing) == 0 {
			created, err := uow.Reminders().Create(ctx, reminder.CreateInput{
				ID:           s.idGenerator.GenerateReminderID(),
				MealTime:     mealTime,
				ReminderTime: slot.Time,
				Enabled:      true,
				Label:        slot.Label + " Time",
				SoundID:      c.Some(reminder.DEFAULT_SOUND_ID),
				CreatedAt:    s.now(),
			})
			if err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("mealTime", mealTime.String()))
				return Result{}, err
			}
			result.Created = append(result.Created, created)
			continue
		}

		current := existing[0]
		if current.ReminderTime == slot.Time {
			continue
		}
		current.ReminderTime = slot.Time
		updated, err := uow.Reminders().Update(ctx, current)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", current.ID))
			return Result{}, err
		}
		result.Updated = append(result.Updated, updated)
	}

	if !result.Changed() {
		return result, nil
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return Result{}, err
	}

	s.rescheduler.RequestReschedule(ctx)
	s.log.Info(
		ctx,
		"Reminders derived from the meal plan.",
		logging.Entry("created", len(result.Created)),
		logging.Entry("updated", len(result.Updated)),
	)
	return result, nil
}
