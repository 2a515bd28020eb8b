package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const columns = `id, meal_time, reminder_time, enabled, label, sound_id, advance_warning,
	repeat, repeat_interval, max_repeats, version, created_at`

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ReminderRepository struct {
	db DBTX
}

func NewReminderRepository(db DBTX) *ReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &ReminderRepository{db: db}
}

// Lock is a no-op: the connection pool holds a single connection, so transactions never overlap.
func (r *ReminderRepository) Lock(ctx context.Context) error {
	return nil
}

func (r *ReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO reminder (
			id, meal_time, reminder_time, enabled, label, sound_id, advance_warning,
			repeat, repeat_interval, max_repeats, version, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		string(input.ID),
		input.MealTime.String(),
		input.ReminderTime.String(),
		input.Enabled,
		input.Label,
		encodeText(input.SoundID),
		encodeInt(input.AdvanceWarning),
		input.Repeat,
		encodeInt(input.RepeatInterval),
		encodeInt(input.MaxRepeats),
		encodeTime(input.CreatedAt),
	)

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return rem, reminder.ErrReminderAlreadyExists
	}
	if err != nil {
		return rem, err
	}
	return r.GetByID(ctx, input.ID)
}

func (r *ReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM reminder WHERE id = ?", string(id))
	rem, err = scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *ReminderRepository) List(ctx context.Context, options reminder.ListOptions) ([]reminder.Reminder, error) {
	conditions := []string{"1"}
	args := []any{}
	if options.EnabledOnly {
		conditions = append(conditions, "enabled = 1")
	}
	if options.MealTimeEquals.IsPresent {
		conditions = append(conditions, "meal_time = ?")
		args = append(args, options.MealTimeEquals.Value.String())
	}
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT "+columns+" FROM reminder WHERE "+strings.Join(conditions, " AND ")+
			" ORDER BY created_at, rowid",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) Update(ctx context.Context, rem reminder.Reminder) (updated reminder.Reminder, err error) {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE reminder SET
			meal_time = ?,
			reminder_time = ?,
			enabled = ?,
			label = ?,
			sound_id = ?,
			advance_warning = ?,
			repeat = ?,
			repeat_interval = ?,
			max_repeats = ?,
			version = version + 1
		WHERE id = ? AND version = ?`,
		rem.MealTime.String(),
		rem.ReminderTime.String(),
		rem.Enabled,
		rem.Label,
		encodeText(rem.SoundID),
		encodeInt(rem.AdvanceWarning),
		rem.Repeat,
		encodeInt(rem.RepeatInterval),
		encodeInt(rem.MaxRepeats),
		string(rem.ID),
		rem.Version,
	)
	if err != nil {
		return updated, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return updated, err
	}

	stored, err := r.GetByID(ctx, rem.ID)
	if err != nil {
		return updated, err
	}
	if affected == 0 {
		return updated, fmt.Errorf(
			"%w: stored %d, got %d", reminder.ErrReminderVersionConflict, stored.Version, rem.Version,
		)
	}
	return stored, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reminder WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(row scanner) (rem reminder.Reminder, err error) {
	var (
		id             string
		mealTime       string
		reminderTime   string
		soundID        sql.NullString
		advanceWarning sql.NullInt64
		repeatInterval sql.NullInt64
		maxRepeats     sql.NullInt64
		version        int64
		createdAt      string
	)
	err = row.Scan(
		&id,
		&mealTime,
		&reminderTime,
		&rem.Enabled,
		&rem.Label,
		&soundID,
		&advanceWarning,
		&rem.Repeat,
		&repeatInterval,
		&maxRepeats,
		&version,
		&createdAt,
	)
	if err != nil {
		return rem, err
	}

	rem.ID = reminder.ID(id)
	rem.MealTime, err = reminder.ParseMealTime(mealTime)
	if err != nil {
		return rem, err
	}
	rem.ReminderTime, err = reminder.ParseTimeOfDay(reminderTime)
	if err != nil {
		return rem, err
	}
	rem.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return rem, err
	}
	rem.SoundID = c.NewOptional(soundID.String, soundID.Valid)
	rem.AdvanceWarning = decodeInt(advanceWarning)
	rem.RepeatInterval = decodeInt(repeatInterval)
	rem.MaxRepeats = decodeInt(maxRepeats)
	rem.Version = uint32(version)

	err = rem.Validate()
	if err != nil {
		return rem, err
	}
	return rem, nil
}

func encodeText(value c.Optional[string]) sql.NullString {
	return sql.NullString{String: value.Value, Valid: value.IsPresent}
}

func encodeInt(value c.Optional[uint32]) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(value.Value), Valid: value.IsPresent}
}

func decodeInt(value sql.NullInt64) c.Optional[uint32] {
	return c.NewOptional(uint32(value.Int64), value.Valid)
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
