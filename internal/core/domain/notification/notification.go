package notification

import (
	"context"
	"errors"
	"fmt"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"strings"
	"time"
)

const (
	ICON  = "/favicon.ico.png"
	BADGE = "/icon-192x192.png"
)

var ErrDisplayFailed = errors.New("notification could not be displayed")

type Data struct {
	ReminderID reminder.ID       `json:"reminderId"`
	MealTime   reminder.MealTime `json:"mealTime"`
	Kind       schedule.Kind     `json:"kind"`
	Occurrence time.Time         `json:"occurrence"`
}

type Notification struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Icon               string `json:"icon"`
	Badge              string `json:"badge"`
	Tag                string `json:"tag"`
	Data               Data   `json:"data"`
	RequireInteraction bool   `json:"requireInteraction"`
	Renotify           bool   `json:"renotify"`
	Silent             bool   `json:"silent"`
}

// ForArm builds the notification shown when arm fires.
// Advance warnings are lighter: they carry their own tag and do not require interaction.
func ForArm(arm schedule.Arm) Notification {
	r := arm.Reminder
	n := Notification{
		Icon:  ICON,
		Badge: BADGE,
		Tag:   string(r.ID),
		Data: Data{
			ReminderID: r.ID,
			MealTime:   r.MealTime,
			Kind:       arm.Kind,
			Occurrence: arm.Occurrence,
		},
		RequireInteraction: true,
		Renotify:           true,
	}

	switch arm.Kind {
	case schedule.KindAdvanceWarning:
		minutes := int(r.AdvanceWarningDuration() / time.Minute)
		n.Title = fmt.Sprintf("Upcoming: %s", r.Label)
		n.Body = fmt.Sprintf("%s is coming up in %d minutes.", r.Label, minutes)
		n.Tag = fmt.Sprintf("%s-advance", r.ID)
		n.RequireInteraction = false
		n.Renotify = false
	case schedule.KindRepeat:
		n.Title = fmt.Sprintf("Reminder: %s", r.Label)
		n.Body = fmt.Sprintf(
			"Still time for your %s (%d of %d).",
			strings.ToLower(r.Label), arm.Attempt, r.RepeatCount(),
		)
	default:
		n.Title = fmt.Sprintf("Time for %s", r.Label)
		n.Body = fmt.Sprintf("It's %s. Time for your %s.", r.ReminderTime, strings.ToLower(r.Label))
	}
	return n
}

type Displayer interface {
	Display(ctx context.Context, n Notification) error
}

// Failed is a notification whose delivery failed twice in the background context.
type Failed struct {
	ID         string
	Reminder   reminder.Reminder
	Kind       schedule.Kind
	Occurrence time.Time
	Attempt    int
	At         time.Time
	Error      string
}

func (f Failed) Arm() schedule.Arm {
	return schedule.Arm{
		Reminder:   f.Reminder,
		Kind:       f.Kind,
		Occurrence: f.Occurrence,
		FireAt:     f.At,
		Attempt:    f.Attempt,
	}
}

// FailedQueue is an append-only log of failed deliveries. Push assigns the ID.
type FailedQueue interface {
	Push(ctx context.Context, f Failed) (string, error)
	List(ctx context.Context) ([]Failed, error)
	Remove(ctx context.Context, ids ...string) error
}

// WakeLock keeps the background context alive while a delivery is in flight.
type WakeLock interface {
	Acquire(ctx context.Context, tag string) (release func(context.Context), err error)
}
