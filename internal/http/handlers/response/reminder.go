package response

import (
	"mealremind/internal/core/domain/reminder"
	"time"
)

type Reminder struct {
	ID             string    `json:"id"`
	MealTime       string    `json:"meal_time"`
	ReminderTime   string    `json:"reminder_time"`
	Enabled        bool      `json:"enabled"`
	Label          string    `json:"label"`
	SoundID        *string   `json:"sound_id"`
	AdvanceWarning *uint32   `json:"advance_warning"`
	Repeat         bool      `json:"repeat"`
	RepeatInterval *uint32   `json:"repeat_interval"`
	MaxRepeats     *uint32   `json:"max_repeats"`
	Version        uint32    `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = string(dr.ID)
	r.MealTime = dr.MealTime.String()
	r.ReminderTime = dr.ReminderTime.String()
	r.Enabled = dr.Enabled
	r.Label = dr.Label
	if dr.SoundID.IsPresent {
		r.SoundID = &dr.SoundID.Value
	}
	if dr.AdvanceWarning.IsPresent {
		r.AdvanceWarning = &dr.AdvanceWarning.Value
	}
	r.Repeat = dr.Repeat
	if dr.RepeatInterval.IsPresent {
		r.RepeatInterval = &dr.RepeatInterval.Value
	}
	if dr.MaxRepeats.IsPresent {
		r.MaxRepeats = &dr.MaxRepeats.Value
	}
	r.Version = dr.Version
	r.CreatedAt = dr.CreatedAt
}

func FromDomainReminders(drs []reminder.Reminder) []Reminder {
	reminders := make([]Reminder, 0, len(drs))
	for _, dr := range drs {
		r := Reminder{}
		r.FromDomainType(dr)
		reminders = append(reminders, r)
	}
	return reminders
}
