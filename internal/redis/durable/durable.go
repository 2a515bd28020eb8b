package durable

import (
	"context"
	"errors"
	"fmt"
	"mealremind/internal/core/domain/durable"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/schema"
	"strconv"

	"github.com/go-redis/redis/v9"
)

// Store keeps the worker's reminder snapshot in Redis.
//
// Schema v1 is a hash of reminder records keyed by ID.
// Schema v2 adds a set of IDs per meal time, a set of enabled IDs
// and a sorted set of IDs scored by minutes since midnight.
// The failed notification stream of v2 lives in the failed_queue package.
type Store struct {
	client *redis.Client
	log    logging.Logger
	prefix string
}

func New(client *redis.Client, log logging.Logger, prefix string) *Store {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if prefix == "" {
		panic(e.NewInvalidArgumentError("prefix", "must not be empty"))
	}
	return &Store{client: client, log: log, prefix: prefix}
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for _, part := range parts {
		k += ":" + part
	}
	return k
}

func (s *Store) schemaKey() string    { return s.key("schema") }
func (s *Store) remindersKey() string { return s.key("reminders") }
func (s *Store) enabledKey() string   { return s.key("enabled") }
func (s *Store) byTimeKey() string    { return s.key("by-time") }

func (s *Store) byMealKey(m reminder.MealTime) string {
	return s.key("by-meal", m.String())
}

// Migrate upgrades the layout step by step up to SCHEMA_VERSION. Data is never dropped.
func (s *Store) Migrate(ctx context.Context) (from int, to int, err error) {
	from, err = s.version(ctx)
	if err != nil {
		return from, from, err
	}
	if from > durable.SCHEMA_VERSION {
		return from, from, fmt.Errorf("%w: %d", durable.ErrSchemaTooNew, from)
	}

	to = from
	for to < durable.SCHEMA_VERSION {
		next := to + 1
		switch next {
		case 1:
			err = s.client.Set(ctx, s.schemaKey(), next, 0).Err()
		case 2:
			err = s.upgradeToIndexes(ctx)
		}
		if err != nil {
			return from, to, fmt.Errorf("could not migrate durable schema to v%d: %w", next, err)
		}
		to = next
		s.log.Info(ctx, "Durable schema upgraded.", logging.Entry("version", to))
	}
	return from, to, nil
}

func (s *Store) version(ctx context.Context) (int, error) {
	value, err := s.client.Get(ctx, s.schemaKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *Store) upgradeToIndexes(ctx context.Context) error {
	reminders, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range reminders {
			s.index(ctx, pipe, r)
		}
		pipe.Set(ctx, s.schemaKey(), 2, 0)
		return nil
	})
	return err
}

// ReplaceAll swaps the whole snapshot atomically.
func (s *Store) ReplaceAll(ctx context.Context, reminders []reminder.Reminder) error {
	records := make(map[string]interface{}, len(reminders))
	for _, r := range reminders {
		record := schema.EncodeReminder(r)
		data, err := record.Marshal()
		if err != nil {
			return err
		}
		records[string(r.ID)] = data
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		keys := []string{s.remindersKey(), s.enabledKey(), s.byTimeKey()}
		for _, m := range reminder.MealTimes {
			keys = append(keys, s.byMealKey(m))
		}
		pipe.Del(ctx, keys...)
		if len(records) > 0 {
			pipe.HSet(ctx, s.remindersKey(), records)
		}
		for _, r := range reminders {
			s.index(ctx, pipe, r)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "Durable reminder snapshot replaced.", logging.Entry("count", len(reminders)))
	return nil
}

func (s *Store) index(ctx context.Context, pipe redis.Pipeliner, r reminder.Reminder) {
	id := string(r.ID)
	pipe.SAdd(ctx, s.byMealKey(r.MealTime), id)
	if r.Enabled {
		pipe.SAdd(ctx, s.enabledKey(), id)
	}
	pipe.ZAdd(ctx, s.byTimeKey(), redis.Z{Score: float64(r.ReminderTime.MinutesOfDay()), Member: id})
}

// ListReminders returns the enabled reminders ordered by time of day.
func (s *Store) ListReminders(ctx context.Context) ([]reminder.Reminder, error) {
	ids, err := s.client.ZRange(ctx, s.byTimeKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	enabled, err := s.client.SMembersMap(ctx, s.enabledKey()).Result()
	if err != nil {
		return nil, err
	}

	wanted := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := enabled[id]; ok {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return []reminder.Reminder{}, nil
	}

	values, err := s.client.HMGet(ctx, s.remindersKey(), wanted...).Result()
	if err != nil {
		return nil, err
	}
	reminders := make([]reminder.Reminder, 0, len(values))
	for ix, value := range values {
		data, ok := value.(string)
		if !ok {
			s.log.Warning(ctx, "Durable index points to a missing reminder.", logging.Entry("id", wanted[ix]))
			continue
		}
		r, err := decode(data)
		if err != nil {
			s.log.Warning(
				ctx,
				"Skipping undecodable durable reminder.",
				logging.Entry("id", wanted[ix]),
				logging.Entry("err", err),
			)
			continue
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

func (s *Store) readAll(ctx context.Context) ([]reminder.Reminder, error) {
	values, err := s.client.HGetAll(ctx, s.remindersKey()).Result()
	if err != nil {
		return nil, err
	}
	reminders := make([]reminder.Reminder, 0, len(values))
	for _, data := range values {
		r, err := decode(data)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

func decode(data string) (reminder.Reminder, error) {
	record := schema.Reminder{}
	if err := record.Unmarshal([]byte(data)); err != nil {
		return reminder.Reminder{}, err
	}
	return record.Decode()
}
