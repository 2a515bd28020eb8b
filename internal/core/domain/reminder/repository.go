package reminder

import (
	"context"
	c "mealremind/internal/core/domain/common"
	"time"
)

type CreateInput struct {
	ID             ID
	MealTime       MealTime
	ReminderTime   TimeOfDay
	Enabled        bool
	Label          string
	SoundID        c.Optional[string]
	AdvanceWarning c.Optional[uint32]
	Repeat         bool
	RepeatInterval c.Optional[uint32]
	MaxRepeats     c.Optional[uint32]
	CreatedAt      time.Time
}

type ListOptions struct {
	EnabledOnly    bool
	MealTimeEquals c.Optional[MealTime]
}

// Repository is the durable reminder collection.
//
// Update replaces every mutable field of the stored record, but only when the
// stored version equals r.Version; the returned record carries the next version.
type Repository interface {
	Lock(ctx context.Context) error
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	List(ctx context.Context, options ListOptions) ([]Reminder, error)
	Update(ctx context.Context, r Reminder) (Reminder, error)
	Delete(ctx context.Context, id ID) error
}

type IDGenerator interface {
	GenerateReminderID() ID
}

// Rescheduler receives a signal every time the reminder collection changes.
type Rescheduler interface {
	RequestReschedule(ctx context.Context)
}

// Validate checks the same invariants as Reminder.Validate for a record that is not stored yet.
func (i CreateInput) Validate() error {
	r := Reminder{
		ID:             i.ID,
		MealTime:       i.MealTime,
		ReminderTime:   i.ReminderTime,
		Enabled:        i.Enabled,
		Label:          i.Label,
		SoundID:        i.SoundID,
		AdvanceWarning: i.AdvanceWarning,
		Repeat:         i.Repeat,
		RepeatInterval: i.RepeatInterval,
		MaxRepeats:     i.MaxRepeats,
		Version:        1,
	}
	return r.Validate()
}
