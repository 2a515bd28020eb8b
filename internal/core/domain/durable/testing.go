package durable

import (
	"context"
	"mealremind/internal/core/domain/reminder"
	"sync"
)

type FakeStore struct {
	Version      int
	MigrateError error
	ReplaceError error
	Replaced     int
	reminders    []reminder.Reminder
	lock         sync.Mutex
}

func NewFakeStore(reminders ...reminder.Reminder) *FakeStore {
	return &FakeStore{reminders: reminders}
}

func (s *FakeStore) Migrate(ctx context.Context) (int, int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.MigrateError != nil {
		return s.Version, s.Version, s.MigrateError
	}
	from := s.Version
	s.Version = SCHEMA_VERSION
	return from, s.Version, nil
}

func (s *FakeStore) ReplaceAll(ctx context.Context, reminders []reminder.Reminder) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ReplaceError != nil {
		return s.ReplaceError
	}
	s.reminders = append([]reminder.Reminder(nil), reminders...)
	s.Replaced++
	return nil
}

func (s *FakeStore) ListReminders(ctx context.Context) ([]reminder.Reminder, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]reminder.Reminder(nil), s.reminders...), nil
}

type FakeSyncRequester struct {
	Err       error
	Snapshots []Snapshot
	lock      sync.Mutex
}

func NewFakeSyncRequester() *FakeSyncRequester {
	return &FakeSyncRequester{}
}

func (r *FakeSyncRequester) RequestSync(ctx context.Context, snapshot Snapshot) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.Snapshots = append(r.Snapshots, snapshot)
	return nil
}

func (r *FakeSyncRequester) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Snapshots)
}
