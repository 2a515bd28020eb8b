package notification

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeDisplayer struct {
	Displayed []Notification
	// Errors are returned by consecutive Display calls, nil once exhausted.
	Errors []error
	calls  int
	lock   sync.Mutex
}

func NewFakeDisplayer() *FakeDisplayer {
	return &FakeDisplayer{}
}

func (d *FakeDisplayer) Display(ctx context.Context, n Notification) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.calls++
	if len(d.Errors) > 0 {
		err := d.Errors[0]
		d.Errors = d.Errors[1:]
		if err != nil {
			return err
		}
	}
	d.Displayed = append(d.Displayed, n)
	return nil
}

func (d *FakeDisplayer) Calls() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.calls
}

func (d *FakeDisplayer) Shown() []Notification {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]Notification(nil), d.Displayed...)
}

type FakeFailedQueue struct {
	Items     map[string]Failed
	PushError error
	ListError error
	nextID    int
	lock      sync.Mutex
}

func NewFakeFailedQueue(items ...Failed) *FakeFailedQueue {
	q := &FakeFailedQueue{Items: make(map[string]Failed)}
	for _, item := range items {
		_, _ = q.Push(context.Background(), item)
	}
	return q
}

func (q *FakeFailedQueue) Push(ctx context.Context, f Failed) (string, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.PushError != nil {
		return "", q.PushError
	}
	q.nextID++
	f.ID = fmt.Sprintf("%d-0", q.nextID)
	q.Items[f.ID] = f
	return f.ID, nil
}

func (q *FakeFailedQueue) List(ctx context.Context) ([]Failed, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.ListError != nil {
		return nil, q.ListError
	}
	items := make([]Failed, 0, len(q.Items))
	for _, f := range q.Items {
		items = append(items, f)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (q *FakeFailedQueue) Remove(ctx context.Context, ids ...string) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	for _, id := range ids {
		delete(q.Items, id)
	}
	return nil
}

func (q *FakeFailedQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.Items)
}

type FakeWakeLock struct {
	AcquireError error
	Acquired     []string
	Released     int
	lock         sync.Mutex
}

func NewFakeWakeLock() *FakeWakeLock {
	return &FakeWakeLock{}
}

func (w *FakeWakeLock) Acquire(ctx context.Context, tag string) (func(context.Context), error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.AcquireError != nil {
		return nil, w.AcquireError
	}
	w.Acquired = append(w.Acquired, tag)
	return func(context.Context) {
		w.lock.Lock()
		defer w.lock.Unlock()
		w.Released++
	}, nil
}

type FakePermissionState struct {
	Current   Permission
	Requested int
	lock      sync.Mutex
}

func NewFakePermissionState(p Permission) *FakePermissionState {
	return &FakePermissionState{Current: p}
}

func (s *FakePermissionState) Permission(ctx context.Context) Permission {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.Current
}

func (s *FakePermissionState) SetPermission(ctx context.Context, p Permission) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Current = p
}

func (s *FakePermissionState) RequestPermission(ctx context.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Requested++
}
