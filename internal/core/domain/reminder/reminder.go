package reminder

import (
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"time"
)

const DEFAULT_SOUND_ID = "default"

type ID string

type Reminder struct {
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
	Version        uint32
	CreatedAt      time.Time
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return e.NewInvalidStateError("reminder ID must be set")
	}
	if r.MealTime.IsZero() {
		return e.NewInvalidStateError("reminder meal time must be set")
	}
	if r.Version == 0 {
		return e.NewInvalidStateError("reminder version must be positive")
	}
	return r.validateRepeat()
}

func (r *Reminder) validateRepeat() error {
	if !r.Repeat {
		return nil
	}
	if r.RepeatInterval.ValueOr(0) == 0 || r.MaxRepeats.ValueOr(0) == 0 {
		return ErrReminderInvalidRepeat
	}
	if time.Duration(r.RepeatInterval.Value)*time.Duration(r.MaxRepeats.Value)*time.Minute >= 24*time.Hour {
		return ErrReminderInvalidRepeat
	}
	return nil
}

// EffectiveSoundID resolves an absent sound to the default one.
func (r *Reminder) EffectiveSoundID() string {
	if !r.SoundID.IsPresent || r.SoundID.Value == "" {
		return DEFAULT_SOUND_ID
	}
	return r.SoundID.Value
}

func (r *Reminder) AdvanceWarningDuration() time.Duration {
	return time.Duration(r.AdvanceWarning.ValueOr(0)) * time.Minute
}

// RepeatCount returns how many repeats follow the main fire, zero when repeating is off.
func (r *Reminder) RepeatCount() int {
	if !r.Repeat || r.RepeatInterval.ValueOr(0) == 0 {
		return 0
	}
	return int(r.MaxRepeats.ValueOr(0))
}

func (r *Reminder) RepeatIntervalDuration() time.Duration {
	return time.Duration(r.RepeatInterval.ValueOr(0)) * time.Minute
}
