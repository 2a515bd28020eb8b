// Package schema is the JSON wire format shared by the sync queue and the durable Redis store.
package schema

import (
	"encoding/json"
	c "mealremind/internal/core/domain/common"
	"mealremind/internal/core/domain/durable"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/core/domain/schedule"
	"time"
)

type Reminder struct {
	ID             string    `json:"id"`
	MealTime       string    `json:"mealTime"`
	ReminderTime   string    `json:"reminderTime"`
	Enabled        bool      `json:"enabled"`
	Label          string    `json:"label"`
	SoundID        *string   `json:"soundId,omitempty"`
	AdvanceWarning *uint32   `json:"advanceWarning,omitempty"`
	Repeat         bool      `json:"repeat"`
	RepeatInterval *uint32   `json:"repeatInterval,omitempty"`
	MaxRepeats     *uint32   `json:"maxRepeats,omitempty"`
	Version        uint32    `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r *Reminder) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Reminder) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}

func EncodeReminder(r reminder.Reminder) Reminder {
	return Reminder{
		ID:             string(r.ID),
		MealTime:       r.MealTime.String(),
		ReminderTime:   r.ReminderTime.String(),
		Enabled:        r.Enabled,
		Label:          r.Label,
		SoundID:        encodeOptional(r.SoundID),
		AdvanceWarning: encodeOptional(r.AdvanceWarning),
		Repeat:         r.Repeat,
		RepeatInterval: encodeOptional(r.RepeatInterval),
		MaxRepeats:     encodeOptional(r.MaxRepeats),
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
	}
}

// Decode converts the record back and validates it.
func (r *Reminder) Decode() (rem reminder.Reminder, err error) {
	mealTime, err := reminder.ParseMealTime(r.MealTime)
	if err != nil {
		return rem, err
	}
	reminderTime, err := reminder.ParseTimeOfDay(r.ReminderTime)
	if err != nil {
		return rem, err
	}
	rem = reminder.Reminder{
		ID:             reminder.ID(r.ID),
		MealTime:       mealTime,
		ReminderTime:   reminderTime,
		Enabled:        r.Enabled,
		Label:          r.Label,
		SoundID:        decodeOptional(r.SoundID),
		AdvanceWarning: decodeOptional(r.AdvanceWarning),
		Repeat:         r.Repeat,
		RepeatInterval: decodeOptional(r.RepeatInterval),
		MaxRepeats:     decodeOptional(r.MaxRepeats),
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
	}
	if err := rem.Validate(); err != nil {
		return rem, err
	}
	return rem, nil
}

func EncodeReminders(reminders []reminder.Reminder) []Reminder {
	encoded := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		encoded = append(encoded, EncodeReminder(r))
	}
	return encoded
}

func DecodeReminders(records []Reminder) ([]reminder.Reminder, error) {
	decoded := make([]reminder.Reminder, 0, len(records))
	for _, record := range records {
		r, err := record.Decode()
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, r)
	}
	return decoded, nil
}

// SyncRequest carries the full reminder collection from the foreground to the worker,
// together with the occurrences whose repeats were dismissed, keyed by reminder ID.
type SyncRequest struct {
	Reason      string               `json:"reason"`
	RequestedAt time.Time            `json:"requestedAt"`
	Reminders   []Reminder           `json:"reminders"`
	Dismissed   map[string]time.Time `json:"dismissed,omitempty"`
}

func EncodeSnapshot(reason string, requestedAt time.Time, snapshot durable.Snapshot) SyncRequest {
	request := SyncRequest{
		Reason:      reason,
		RequestedAt: requestedAt,
		Reminders:   EncodeReminders(snapshot.Reminders),
	}
	if len(snapshot.Dismissed) > 0 {
		request.Dismissed = make(map[string]time.Time, len(snapshot.Dismissed))
		for id, occurrence := range snapshot.Dismissed {
			request.Dismissed[string(id)] = occurrence
		}
	}
	return request
}

func (r *SyncRequest) DecodeSnapshot() (snapshot durable.Snapshot, err error) {
	snapshot.Reminders, err = DecodeReminders(r.Reminders)
	if err != nil {
		return snapshot, err
	}
	snapshot.Dismissed = make(map[reminder.ID]time.Time, len(r.Dismissed))
	for id, occurrence := range r.Dismissed {
		snapshot.Dismissed[reminder.ID(id)] = occurrence
	}
	return snapshot, nil
}

func (r *SyncRequest) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *SyncRequest) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}

type FailedNotification struct {
	Reminder   Reminder  `json:"reminder"`
	Kind       string    `json:"kind"`
	Occurrence time.Time `json:"occurrence"`
	Attempt    int       `json:"attempt"`
	At         time.Time `json:"at"`
	Error      string    `json:"error"`
}

func (f *FailedNotification) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

func (f *FailedNotification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, f)
}

func EncodeFailed(f notification.Failed) FailedNotification {
	return FailedNotification{
		Reminder:   EncodeReminder(f.Reminder),
		Kind:       f.Kind.String(),
		Occurrence: f.Occurrence,
		Attempt:    f.Attempt,
		At:         f.At,
		Error:      f.Error,
	}
}

// Decode converts the record back. The ID is assigned by the queue, not stored in the record.
func (f *FailedNotification) Decode(id string) (failed notification.Failed, err error) {
	rem, err := f.Reminder.Decode()
	if err != nil {
		return failed, err
	}
	kind, err := schedule.ParseKind(f.Kind)
	if err != nil {
		return failed, err
	}
	return notification.Failed{
		ID:         id,
		Reminder:   rem,
		Kind:       kind,
		Occurrence: f.Occurrence,
		Attempt:    f.Attempt,
		At:         f.At,
		Error:      f.Error,
	}, nil
}

func encodeOptional[T any](value c.Optional[T]) *T {
	if !value.IsPresent {
		return nil
	}
	v := value.Value
	return &v
}

func decodeOptional[T any](value *T) c.Optional[T] {
	if value == nil {
		return c.Optional[T]{}
	}
	return c.Some(*value)
}
