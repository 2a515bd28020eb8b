package schedule

import (
	"context"
	"mealremind/internal/core/domain/clock"
	"mealremind/internal/core/domain/reminder"
	"sync"
	"time"
)

// FakeTimerSet arms timers on a clock.FakeClock so tests can advance time explicitly.
type FakeTimerSet struct {
	clock     *clock.FakeClock
	timers    []clock.Timer
	Cancelled int
	lock      sync.Mutex
}

func NewFakeTimerSet(c *clock.FakeClock) *FakeTimerSet {
	return &FakeTimerSet{clock: c}
}

func (s *FakeTimerSet) CancelAll() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	count := 0
	for _, t := range s.timers {
		if t.Stop() {
			count++
		}
	}
	s.timers = nil
	s.Cancelled += count
	return count
}

func (s *FakeTimerSet) Arm(d time.Duration, f func()) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.timers = append(s.timers, s.clock.AfterFunc(d, f))
}

func (s *FakeTimerSet) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.timers)
}

type FakeFirer struct {
	Fired []Arm
	Err   error
	lock  sync.Mutex
}

func NewFakeFirer() *FakeFirer {
	return &FakeFirer{}
}

func (f *FakeFirer) Fire(ctx context.Context, arm Arm) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Fired = append(f.Fired, arm)
	return f.Err
}

func (f *FakeFirer) Kinds() []Kind {
	f.lock.Lock()
	defer f.lock.Unlock()
	kinds := make([]Kind, 0, len(f.Fired))
	for _, arm := range f.Fired {
		kinds = append(kinds, arm.Kind)
	}
	return kinds
}

type FakeSource struct {
	Reminders []reminder.Reminder
	Err       error
	Calls     int
	lock      sync.Mutex
}

func NewFakeSource(reminders ...reminder.Reminder) *FakeSource {
	return &FakeSource{Reminders: reminders}
}

func (s *FakeSource) ListReminders(ctx context.Context) ([]reminder.Reminder, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]reminder.Reminder(nil), s.Reminders...), nil
}

type FakePeriodicWake struct {
	Registered map[string]func(ctx context.Context)
	Err        error
}

func NewFakePeriodicWake() *FakePeriodicWake {
	return &FakePeriodicWake{Registered: make(map[string]func(ctx context.Context))}
}

func (p *FakePeriodicWake) Register(tag string, every time.Duration, f func(ctx context.Context)) error {
	if p.Err != nil {
		return p.Err
	}
	p.Registered[tag] = f
	return nil
}

type FakeDismisser struct {
	Dismissed []reminder.ID
	Err       error
}

func (d *FakeDismisser) Dismiss(ctx context.Context, id reminder.ID) (time.Time, error) {
	if d.Err != nil {
		return time.Time{}, d.Err
	}
	d.Dismissed = append(d.Dismissed, id)
	return time.Time{}, nil
}
