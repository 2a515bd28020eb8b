package schedule

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/reminder"
	"time"

	"github.com/golang-module/carbon/v2"
)

var ErrNothingToDismiss = errors.New("reminder has no fired occurrence to dismiss")

// Arm is a single timer of a scheduling pass.
type Arm struct {
	Reminder   reminder.Reminder
	Kind       Kind
	Occurrence time.Time
	FireAt     time.Time
	// Attempt is the repeat number, starting at 1. Zero for other kinds.
	Attempt int
}

func (a Arm) Delay(now time.Time) time.Duration {
	d := a.FireAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// History is what a context remembers between passes: the occurrence each
// reminder last fired for and the occurrence the user dismissed.
type History struct {
	Fired     map[reminder.ID]time.Time
	Dismissed map[reminder.ID]time.Time
}

func NewHistory() History {
	return History{
		Fired:     make(map[reminder.ID]time.Time),
		Dismissed: make(map[reminder.ID]time.Time),
	}
}

// NextOccurrence returns today's occurrence of t, or tomorrow's if today's is already in the past.
func NextOccurrence(t reminder.TimeOfDay, now time.Time) time.Time {
	occurrence := t.On(now)
	if occurrence.Before(now) {
		occurrence = t.On(nextDay(now))
	}
	return occurrence
}

func nextDay(t time.Time) time.Time {
	return carbon.Time2Carbon(t).AddDay().Carbon2Time().In(t.Location())
}

// ComputeArmedSet returns every timer a context has to arm, in reminder order.
// Disabled reminders are skipped. An occurrence that has already fired is
// moved to the next day, so a pass run from a fire callback re-arms for tomorrow.
func ComputeArmedSet(reminders []reminder.Reminder, now time.Time, history History) []Arm {
	arms := make([]Arm, 0, len(reminders))
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}

		occurrence := NextOccurrence(r.ReminderTime, now)
		if fired, ok := history.Fired[r.ID]; ok && !occurrence.After(fired) {
			occurrence = r.ReminderTime.On(nextDay(occurrence))
		}
		arms = append(arms, Arm{Reminder: r, Kind: KindMain, Occurrence: occurrence, FireAt: occurrence})

		if advance := r.AdvanceWarningDuration(); advance > 0 {
			at := occurrence.Add(-advance)
			if at.After(now) {
				arms = append(arms, Arm{Reminder: r, Kind: KindAdvanceWarning, Occurrence: occurrence, FireAt: at})
			}
		}

		arms = append(arms, pendingRepeats(r, now, history)...)
	}
	return arms
}

func pendingRepeats(r reminder.Reminder, now time.Time, history History) []Arm {
	count := r.RepeatCount()
	fired, ok := history.Fired[r.ID]
	if count == 0 || !ok {
		return nil
	}
	if dismissed, ok := history.Dismissed[r.ID]; ok && dismissed.Equal(fired) {
		return nil
	}

	arms := make([]Arm, 0, count)
	for attempt := 1; attempt <= count; attempt++ {
		at := fired.Add(time.Duration(attempt) * r.RepeatIntervalDuration())
		if !at.After(now) {
			continue
		}
		arms = append(arms, Arm{Reminder: r, Kind: KindRepeat, Occurrence: fired, FireAt: at, Attempt: attempt})
	}
	return arms
}

// Firer performs whatever a context does when a timer goes off.
type Firer interface {
	Fire(ctx context.Context, arm Arm) error
}

// TimerSet holds the timers armed by one context. CancelAll is the only way to revoke them.
type TimerSet interface {
	CancelAll() int
	Arm(d time.Duration, f func())
	Len() int
}

// Source lists the reminders a context schedules from.
type Source interface {
	ListReminders(ctx context.Context) ([]reminder.Reminder, error)
}

// Dismisser records that the user acknowledged the current occurrence of a reminder.
type Dismisser interface {
	Dismiss(ctx context.Context, id reminder.ID) (time.Time, error)
}

// PeriodicWake runs f roughly every interval under the given tag until the process stops.
type PeriodicWake interface {
	Register(tag string, every time.Duration, f func(ctx context.Context)) error
}
