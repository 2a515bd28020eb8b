package schedulereminders

import (
	"context"
	"fmt"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"sync"
	"time"
)

type Input struct {
	Reason string
	// Dismissed are dismissals made in another context. They are merged into the history.
	Dismissed map[reminder.ID]time.Time
}

type Result struct {
	Arms      []schedule.Arm
	Cancelled int
	Dismissed map[reminder.ID]time.Time
}

// Service runs scheduling passes for one context. Both the foreground and the
// background context use it; they differ only in the firer.
type Service struct {
	log     logging.Logger
	source  schedule.Source
	timers  schedule.TimerSet
	firer   schedule.Firer
	now     func() time.Time
	history schedule.History
	lock    sync.Mutex
}

func New(
	log logging.Logger,
	source schedule.Source,
	timers schedule.TimerSet,
	firer schedule.Firer,
	now func() time.Time,
) *Service {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if timers == nil {
		panic(e.NewNilArgumentError("timers"))
	}
	if firer == nil {
		panic(e.NewNilArgumentError("firer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Service{
		log:     log,
		source:  source,
		timers:  timers,
		firer:   firer,
		now:     now,
		history: schedule.NewHistory(),
	}
}

// Run cancels every timer of the context and arms the current armed set.
// When the reminders cannot be read the previously armed timers are kept.
func (s *Service) Run(ctx context.Context, input Input) (result Result, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	reminders, err := s.source.ListReminders(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	now := s.now()
	s.acceptDismissals(input.Dismissed)
	s.forgetDeleted(reminders)
	arms := schedule.ComputeArmedSet(reminders, now, s.history)

	result.Cancelled = s.timers.CancelAll()
	for _, arm := range arms {
		arm := arm
		s.timers.Arm(arm.Delay(now), func() { s.fire(arm) })
	}
	result.Arms = arms
	result.Dismissed = make(map[reminder.ID]time.Time, len(s.history.Dismissed))
	for id, occurrence := range s.history.Dismissed {
		result.Dismissed[id] = occurrence
	}

	s.log.Info(
		ctx,
		"Reminders scheduled.",
		logging.Entry("reason", input.Reason),
		logging.Entry("armed", len(arms)),
		logging.Entry("cancelled", result.Cancelled),
	)
	return result, nil
}

// Dismiss stops the repeat chain of the occurrence that fired last.
func (s *Service) Dismiss(ctx context.Context, id reminder.ID) (time.Time, error) {
	s.lock.Lock()
	occurrence, ok := s.history.Fired[id]
	if ok {
		s.history.Dismissed[id] = occurrence
	}
	s.lock.Unlock()

	if !ok {
		return occurrence, fmt.Errorf("%w: %s", schedule.ErrNothingToDismiss, id)
	}
	if _, err := s.Run(ctx, Input{Reason: "dismiss"}); err != nil {
		return occurrence, err
	}
	return occurrence, nil
}

func (s *Service) fire(arm schedule.Arm) {
	ctx := context.Background()
	if arm.Kind == schedule.KindMain {
		s.lock.Lock()
		// A superseded timer may get here after a newer pass re-armed the same occurrence.
		if fired, ok := s.history.Fired[arm.Reminder.ID]; ok && fired.Equal(arm.Occurrence) {
			s.lock.Unlock()
			s.log.Debug(
				ctx,
				"Occurrence already fired, skipping.",
				logging.Entry("reminderID", arm.Reminder.ID),
				logging.Entry("occurrence", arm.Occurrence),
			)
			return
		}
		s.history.Fired[arm.Reminder.ID] = arm.Occurrence
		s.lock.Unlock()
	}

	s.log.Info(
		ctx,
		"Reminder timer fired.",
		logging.Entry("reminderID", arm.Reminder.ID),
		logging.Entry("kind", arm.Kind.String()),
		logging.Entry("occurrence", arm.Occurrence),
	)
	if err := s.firer.Fire(ctx, arm); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", arm.Reminder.ID))
	}

	if arm.Kind == schedule.KindMain {
		_, _ = s.Run(ctx, Input{Reason: "fired"})
	}
}

// acceptDismissals keeps the latest dismissed occurrence per reminder.
func (s *Service) acceptDismissals(dismissed map[reminder.ID]time.Time) {
	for id, occurrence := range dismissed {
		if current, ok := s.history.Dismissed[id]; ok && !occurrence.After(current) {
			continue
		}
		s.history.Dismissed[id] = occurrence
	}
}

func (s *Service) forgetDeleted(reminders []reminder.Reminder) {
	known := make(map[reminder.ID]struct{}, len(reminders))
	for _, r := range reminders {
		known[r.ID] = struct{}{}
	}
	for id := range s.history.Fired {
		if _, ok := known[id]; !ok {
			delete(s.history.Fired, id)
		}
	}
	for id := range s.history.Dismissed {
		if _, ok := known[id]; !ok {
			delete(s.history.Dismissed, id)
		}
	}
}
