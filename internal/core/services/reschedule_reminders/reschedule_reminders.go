package reschedulereminders

import (
	"context"
	"mealremind/internal/core/domain/durable"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
	listreminders "mealremind/internal/core/services/list_reminders"
	schedulereminders "mealremind/internal/core/services/schedule_reminders"
)

type Input struct {
	Reason string
}

type Result struct {
	Armed     int
	SyncSent  bool
	Reminders int
}

type service struct {
	log       logging.Logger
	pass      services.Service[schedulereminders.Input, schedulereminders.Result]
	list      services.Service[listreminders.Input, listreminders.Result]
	requester durable.SyncRequester
}

func New(
	log logging.Logger,
	pass services.Service[schedulereminders.Input, schedulereminders.Result],
	list services.Service[listreminders.Input, listreminders.Result],
	requester durable.SyncRequester,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if pass == nil {
		panic(e.NewNilArgumentError("pass"))
	}
	if list == nil {
		panic(e.NewNilArgumentError("list"))
	}
	if requester == nil {
		panic(e.NewNilArgumentError("requester"))
	}
	return &service{log: log, pass: pass, list: list, requester: requester}
}

// Run re-arms the foreground timers and hands the whole collection to the
// background context. A failed sync request is logged and never fails the pass.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passResult, err := s.pass.Run(ctx, schedulereminders.Input{Reason: input.Reason})
	if err != nil {
		return result, err
	}
	result.Armed = len(passResult.Arms)

	listed, err := s.list.Run(ctx, listreminders.Input{})
	if err != nil {
		s.log.Warning(ctx, "Sync request skipped, reminders are not readable.", logging.Entry("err", err))
		return result, nil
	}
	result.Reminders = len(listed.Reminders)

	snapshot := durable.Snapshot{Reminders: listed.Reminders, Dismissed: passResult.Dismissed}
	if err := s.requester.RequestSync(ctx, snapshot); err != nil {
		s.log.Warning(
			ctx,
			"Sync request could not be published.",
			logging.Entry("err", err),
			logging.Entry("reminders", len(listed.Reminders)),
		)
		return result, nil
	}
	result.SyncSent = true
	return result, nil
}
