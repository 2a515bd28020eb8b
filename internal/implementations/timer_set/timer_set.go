package timerset

import (
	"mealremind/internal/core/domain/clock"
	e "mealremind/internal/core/domain/errors"
	"sync"
	"time"
)

// TimerSet owns the timers of one context. Every CancelAll starts a new
// generation; a callback of an older generation that is already running when
// CancelAll happens returns without calling f.
type TimerSet struct {
	clock      clock.Clock
	timers     map[uint64]clock.Timer
	seq        uint64
	generation uint64
	lock       sync.Mutex
}

func New(c clock.Clock) *TimerSet {
	if c == nil {
		panic(e.NewNilArgumentError("clock"))
	}
	return &TimerSet{clock: c, timers: map[uint64]clock.Timer{}}
}

func (s *TimerSet) CancelAll() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.generation++
	cancelled := 0
	for _, t := range s.timers {
		if t.Stop() {
			cancelled++
		}
	}
	s.timers = map[uint64]clock.Timer{}
	return cancelled
}

func (s *TimerSet) Arm(d time.Duration, f func()) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.seq++
	key := s.seq
	generation := s.generation
	s.timers[key] = s.clock.AfterFunc(d, func() {
		s.lock.Lock()
		current := s.generation == generation
		if current {
			delete(s.timers, key)
		}
		s.lock.Unlock()
		if current {
			f()
		}
	})
}

// Len returns the number of armed timers whose callback has not run yet.
func (s *TimerSet) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.timers)
}
