package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	CreateError error
	ListError   error
	UpdateError error
	DeleteError error
	LockCalls   int

	reminders map[ID]Reminder
	order     []ID
	lock      sync.Mutex
}

func NewFakeRepository(reminders ...Reminder) *FakeRepository {
	repo := &FakeRepository{reminders: make(map[ID]Reminder)}
	for _, r := range reminders {
		if r.Version == 0 {
			r.Version = 1
		}
		repo.reminders[r.ID] = r
		repo.order = append(repo.order, r.ID)
	}
	return repo
}

func (r *FakeRepository) Lock(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.LockCalls++
	return nil
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.reminders[input.ID]; ok {
		return rem, ErrReminderAlreadyExists
	}
	rem = Reminder{
		ID:             input.ID,
		MealTime:       input.MealTime,
		ReminderTime:   input.ReminderTime,
		Enabled:        input.Enabled,
		Label:          input.Label,
		SoundID:        input.SoundID,
		AdvanceWarning: input.AdvanceWarning,
		Repeat:         input.Repeat,
		RepeatInterval: input.RepeatInterval,
		MaxRepeats:     input.MaxRepeats,
		Version:        1,
		CreatedAt:      input.CreatedAt,
	}
	r.reminders[rem.ID] = rem
	r.order = append(r.order, rem.ID)
	return rem, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.reminders[id]
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	return rem, nil
}

func (r *FakeRepository) List(ctx context.Context, options ListOptions) ([]Reminder, error) {
	if r.ListError != nil {
		return nil, r.ListError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Reminder, 0, len(r.order))
	for _, id := range r.order {
		rem := r.reminders[id]
		if options.EnabledOnly && !rem.Enabled {
			continue
		}
		if options.MealTimeEquals.IsPresent && rem.MealTime != options.MealTimeEquals.Value {
			continue
		}
		result = append(result, rem)
	}
	return result, nil
}

func (r *FakeRepository) Update(ctx context.Context, rem Reminder) (updated Reminder, err error) {
	if r.UpdateError != nil {
		return updated, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	stored, ok := r.reminders[rem.ID]
	if !ok {
		return updated, ErrReminderDoesNotExist
	}
	if stored.Version != rem.Version {
		return updated, fmt.Errorf("%w: stored %d, got %d", ErrReminderVersionConflict, stored.Version, rem.Version)
	}
	rem.Version = stored.Version + 1
	rem.CreatedAt = stored.CreatedAt
	r.reminders[rem.ID] = rem
	return rem, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.reminders[id]; !ok {
		return ErrReminderDoesNotExist
	}
	delete(r.reminders, id)
	for ix, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:ix], r.order[ix+1:]...)
			break
		}
	}
	return nil
}

// Snapshot returns all stored reminders sorted by ID.
func (r *FakeRepository) Snapshot() []Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]Reminder, 0, len(r.reminders))
	for _, rem := range r.reminders {
		result = append(result, rem)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type FakeRescheduler struct {
	Requests int
	lock     sync.Mutex
}

func NewFakeRescheduler() *FakeRescheduler {
	return &FakeRescheduler{}
}

func (s *FakeRescheduler) RequestReschedule(ctx context.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Requests++
}

func (s *FakeRescheduler) Count() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.Requests
}

type FakeIDGenerator struct {
	next int
	lock sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (g *FakeIDGenerator) GenerateReminderID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.next++
	return ID(fmt.Sprintf("reminder-%d", g.next))
}
