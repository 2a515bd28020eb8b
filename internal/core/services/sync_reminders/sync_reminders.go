package syncreminders

import (
	"context"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/durable"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/schedule"
	"mealremind/internal/core/services"
	schedulereminders "mealremind/internal/core/services/schedule_reminders"
)

type Input struct {
	Reason   string
	Snapshot c.Optional[durable.Snapshot]
}

type Result struct {
	Armed       int
	Redelivered int
	StillFailed int
}

// Redeliverer makes one delivery attempt without retrying.
type Redeliverer interface {
	Deliver(ctx context.Context, arm schedule.Arm) error
}

type service struct {
	log         logging.Logger
	store       durable.Store
	pass        services.Service[schedulereminders.Input, schedulereminders.Result]
	failed      notification.FailedQueue
	redeliverer Redeliverer
}

func New(
	log logging.Logger,
	store durable.Store,
	pass services.Service[schedulereminders.Input, schedulereminders.Result],
	failed notification.FailedQueue,
	redeliverer Redeliverer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if pass == nil {
		panic(e.NewNilArgumentError("pass"))
	}
	if failed == nil {
		panic(e.NewNilArgumentError("failed"))
	}
	if redeliverer == nil {
		panic(e.NewNilArgumentError("redeliverer"))
	}
	return &service{
		log:         log,
		store:       store,
		pass:        pass,
		failed:      failed,
		redeliverer: redeliverer,
	}
}

// Run replaces the durable snapshot when one is given, re-arms the background
// timers and drains the failed queue. Entries that fail again stay queued.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passInput := schedulereminders.Input{Reason: input.Reason}
	if input.Snapshot.IsPresent {
		if err := s.store.ReplaceAll(ctx, input.Snapshot.Value.Reminders); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reason", input.Reason))
			return result, err
		}
		passInput.Dismissed = input.Snapshot.Value.Dismissed
	}

	passResult, passErr := s.pass.Run(ctx, passInput)
	result.Armed = len(passResult.Arms)

	result.Redelivered, result.StillFailed, err = s.drain(ctx)
	if err != nil {
		return result, err
	}

	s.log.Info(
		ctx,
		"Background sync finished.",
		logging.Entry("reason", input.Reason),
		logging.Entry("armed", result.Armed),
		logging.Entry("redelivered", result.Redelivered),
		logging.Entry("stillFailed", result.StillFailed),
	)
	return result, passErr
}

func (s *service) drain(ctx context.Context) (redelivered int, stillFailed int, err error) {
	items, err := s.failed.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return 0, 0, err
	}

	delivered := make([]string, 0, len(items))
	for _, item := range items {
		if err := s.redeliverer.Deliver(ctx, item.Arm()); err != nil {
			s.log.Warning(
				ctx,
				"Failed notification redelivery failed again.",
				logging.Entry("failedID", item.ID),
				logging.Entry("reminderID", item.Reminder.ID),
				logging.Entry("err", err),
			)
			stillFailed++
			continue
		}
		delivered = append(delivered, item.ID)
	}

	if len(delivered) > 0 {
		if err := s.failed.Remove(ctx, delivered...); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("delivered", delivered))
			return len(delivered), stillFailed, err
		}
	}
	return len(delivered), stillFailed, nil
}
