package uow

import (
	"context"
	"mealremind/internal/core/domain/reminder"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Reminders() reminder.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
