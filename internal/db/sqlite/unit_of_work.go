package sqlite

import (
	"context"
	"database/sql"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/reminder"
	uow "mealremind/internal/core/domain/unit_of_work"
)

type unitOfWorkContext struct {
	tx *sql.Tx
}

func (c *unitOfWorkContext) Commit(ctx context.Context) error {
	return c.tx.Commit()
}

// Rollback after a successful commit is a no-op.
func (c *unitOfWorkContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

func (c *unitOfWorkContext) Reminders() reminder.Repository {
	return NewReminderRepository(c.tx)
}

type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &unitOfWorkContext{tx: tx}, nil
}
