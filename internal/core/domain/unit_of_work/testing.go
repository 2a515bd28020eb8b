package uow

import (
	"context"
	"mealremind/internal/core/domain/reminder"
)

type FakeUnitOfWorkContext struct {
	ReminderRepository *reminder.FakeRepository
	WasRollbackCalled  bool
	WasCommitCalled    bool
	CommitCalls        int
}

func NewFakeUnitOfWorkContext(reminderRepository *reminder.FakeRepository) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{ReminderRepository: reminderRepository}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	c.CommitCalls++
	return nil
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.Repository {
	return c.ReminderRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginCalls int
}

func NewFakeUnitOfWork(reminders ...reminder.Reminder) *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(reminder.NewFakeRepository(reminders...)),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	u.BeginCalls++
	return u.Context, nil
}
