// Package reminders holds the request body shared by the create and update handlers.
package reminders

import (
	"encoding/json"
	"errors"
	"io"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MAX_LABEL_LEN = 128

var timeOfDayRegexp = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Fields struct {
	MealTime       string  `json:"meal_time"`
	ReminderTime   string  `json:"reminder_time"`
	Enabled        *bool   `json:"enabled"`
	Label          string  `json:"label"`
	SoundID        *string `json:"sound_id"`
	AdvanceWarning *uint32 `json:"advance_warning"`
	Repeat         bool    `json:"repeat"`
	RepeatInterval *uint32 `json:"repeat_interval"`
	MaxRepeats     *uint32 `json:"max_repeats"`
}

func (f *Fields) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(f)
}

func (f Fields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.MealTime, validation.Required),
		validation.Field(&f.ReminderTime, validation.Required, validation.Match(timeOfDayRegexp)),
		validation.Field(&f.Label, validation.Required, validation.Length(1, MAX_LABEL_LEN)),
		validation.Field(&f.SoundID, validation.NilOrNotEmpty, validation.Length(1, 64)),
		validation.Field(&f.AdvanceWarning, validation.Max(uint32(24*60))),
		validation.Field(&f.RepeatInterval, validation.Max(uint32(24*60))),
		validation.Field(&f.MaxRepeats, validation.Max(uint32(24*60))),
	)
}

type Parsed struct {
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

// Parse converts the validated body into domain values. A missing enabled flag means enabled.
func (f Fields) Parse() (p Parsed, err error) {
	p.MealTime, err = reminder.ParseMealTime(f.MealTime)
	if err != nil {
		return p, err
	}
	p.ReminderTime, err = reminder.ParseTimeOfDay(f.ReminderTime)
	if err != nil {
		return p, err
	}
	p.Enabled = f.Enabled == nil || *f.Enabled
	p.Label = f.Label
	p.SoundID = optional(f.SoundID)
	p.AdvanceWarning = optional(f.AdvanceWarning)
	p.Repeat = f.Repeat
	p.RepeatInterval = optional(f.RepeatInterval)
	p.MaxRepeats = optional(f.MaxRepeats)
	return p, nil
}

func optional[T any](v *T) c.Optional[T] {
	if v == nil {
		return c.Optional[T]{}
	}
	return c.Some(*v)
}

// IsInvalidReminder reports whether err rejects the submitted record rather than signalling a failure.
func IsInvalidReminder(err error) bool {
	var invalidState *e.InvalidStateError
	return errors.As(err, &invalidState) ||
		errors.Is(err, reminder.ErrReminderInvalidRepeat) ||
		errors.Is(err, reminder.ErrParseMealTime) ||
		errors.Is(err, reminder.ErrParseTimeOfDay)
}
