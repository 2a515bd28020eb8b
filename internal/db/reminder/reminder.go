package dbreminder

import (
	"context"
	"errors"
	"fmt"
	c "mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"

const columns = `id, meal_time, reminder_time, enabled, label, sound_id, advance_warning,
	repeat, repeat_interval, max_repeats, version, created_at`

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxReminderRepository struct {
	db DBTX
}

func NewPgxReminderRepository(db DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

// Lock serializes writers of the whole collection. The method works only within a DB transaction.
func (r *PgxReminderRepository) Lock(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "LOCK TABLE reminder IN SHARE ROW EXCLUSIVE MODE")
	return err
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder (
			id, meal_time, reminder_time, enabled, label, sound_id, advance_warning,
			repeat, repeat_interval, max_repeats, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11)
		RETURNING `+columns,
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
		input.CreatedAt,
	)
	rem, err = scanReminder(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		return rem, reminder.ErrReminderAlreadyExists
	}
	return rem, err
}

func (r *PgxReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(ctx, "SELECT "+columns+" FROM reminder WHERE id = $1", string(id))
	rem, err = scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) List(
	ctx context.Context,
	options reminder.ListOptions,
) ([]reminder.Reminder, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	if options.EnabledOnly {
		conditions = append(conditions, "enabled")
	}
	if options.MealTimeEquals.IsPresent {
		args = append(args, options.MealTimeEquals.Value.String())
		conditions = append(conditions, fmt.Sprintf("meal_time = $%d", len(args)))
	}
	rows, err := r.db.Query(
		ctx,
		"SELECT "+columns+" FROM reminder WHERE "+strings.Join(conditions, " AND ")+
			" ORDER BY created_at, id",
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

func (r *PgxReminderRepository) Update(
	ctx context.Context,
	rem reminder.Reminder,
) (updated reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE reminder SET
			meal_time = $2,
			reminder_time = $3,
			enabled = $4,
			label = $5,
			sound_id = $6,
			advance_warning = $7,
			repeat = $8,
			repeat_interval = $9,
			max_repeats = $10,
			version = version + 1
		WHERE id = $1 AND version = $11
		RETURNING `+columns,
		string(rem.ID),
		rem.MealTime.String(),
		rem.ReminderTime.String(),
		rem.Enabled,
		rem.Label,
		encodeText(rem.SoundID),
		encodeInt(rem.AdvanceWarning),
		rem.Repeat,
		encodeInt(rem.RepeatInterval),
		encodeInt(rem.MaxRepeats),
		int32(rem.Version),
	)
	updated, err = scanReminder(row)
	if !errors.Is(err, pgx.ErrNoRows) {
		return updated, err
	}

	var version int32
	err = r.db.QueryRow(ctx, "SELECT version FROM reminder WHERE id = $1", string(rem.ID)).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return updated, reminder.ErrReminderDoesNotExist
	}
	if err != nil {
		return updated, err
	}
	return updated, fmt.Errorf(
		"%w: stored %d, got %d", reminder.ErrReminderVersionConflict, version, rem.Version,
	)
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reminder WHERE id = $1", string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func scanReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id             string
		mealTime       string
		reminderTime   string
		soundID        pgtype.Text
		advanceWarning pgtype.Int4
		repeatInterval pgtype.Int4
		maxRepeats     pgtype.Int4
		version        int32
		createdAt      time.Time
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
	rem.SoundID = decodeText(soundID)
	rem.AdvanceWarning = decodeInt(advanceWarning)
	rem.RepeatInterval = decodeInt(repeatInterval)
	rem.MaxRepeats = decodeInt(maxRepeats)
	rem.Version = uint32(version)
	rem.CreatedAt = createdAt.UTC()

	err = rem.Validate()
	if err != nil {
		return rem, err
	}
	return rem, nil
}

func encodeText(value c.Optional[string]) pgtype.Text {
	if !value.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: value.Value, Status: pgtype.Present}
}

func decodeText(value pgtype.Text) c.Optional[string] {
	return c.NewOptional(value.String, value.Status == pgtype.Present)
}

func encodeInt(value c.Optional[uint32]) pgtype.Int4 {
	if !value.IsPresent {
		return pgtype.Int4{Status: pgtype.Null}
	}
	return pgtype.Int4{Int: int32(value.Value), Status: pgtype.Present}
}

func decodeInt(value pgtype.Int4) c.Optional[uint32] {
	return c.NewOptional(uint32(value.Int), value.Status == pgtype.Present)
}
