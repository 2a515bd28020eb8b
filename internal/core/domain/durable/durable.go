package durable

import (
	"context"
	"errors"
	"mealremind/internal/core/domain/reminder"
	"time"
)

// SCHEMA_VERSION is the newest durable layout. Every upgrade is additive.
const SCHEMA_VERSION = 2

var ErrSchemaTooNew = errors.New("durable schema is newer than this build supports")

// Store is the background context's own copy of the reminder collection.
// It is replaced wholesale from sync requests and never edited in place.
type Store interface {
	Migrate(ctx context.Context) (from int, to int, err error)
	ReplaceAll(ctx context.Context, reminders []reminder.Reminder) error
	ListReminders(ctx context.Context) ([]reminder.Reminder, error)
}

// Snapshot is the foreground state the background context mirrors.
type Snapshot struct {
	Reminders []reminder.Reminder
	// Dismissed maps a reminder to the occurrence whose repeats the user dismissed.
	Dismissed map[reminder.ID]time.Time
}

// SyncRequester hands a full snapshot to the background context.
type SyncRequester interface {
	RequestSync(ctx context.Context, snapshot Snapshot) error
}
