package uow

import (
	"context"
	"mealremind/internal/core/domain/reminder"
	"mealremind/internal/db"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	db.SkipWithoutPostgres(t)
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCollectionLock() {
	s.createReminder("r-1", true)

	var wg sync.WaitGroup
	wg.Add(10)
	count := 0

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			ctx := context.Background()
			uow, err := s.uow.Begin(ctx)
			if err != nil {
				s.Fail("could not begin unit of work")
				return
			}
			defer uow.Rollback(ctx)

			err = uow.Reminders().Lock(ctx)
			if err != nil {
				s.Fail("could not lock reminders, error is %v", err)
				return
			}
			c := count

			_, err = uow.Reminders().List(ctx, reminder.ListOptions{})
			if err != nil {
				s.Fail("could not list reminders, error is %v", err)
				return
			}

			count = c + 1
		}()
	}

	wg.Wait()
	s.Equal(10, count)
}

func (s *testSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Nil(err)
	_, err = uow.Reminders().Create(ctx, s.input("r-1", true))
	s.Nil(err)
	s.Nil(uow.Rollback(ctx))

	reminders := s.list()

	s.Empty(reminders)
}

func (s *testSuite) TestCommitPersistsChanges() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Nil(err)
	_, err = uow.Reminders().Create(ctx, s.input("r-1", true))
	s.Nil(err)
	_, err = uow.Reminders().Create(ctx, s.input("r-2", false))
	s.Nil(err)
	s.Nil(uow.Commit(ctx))

	reminders := s.list()

	s.Len(reminders, 2)
}

func (s *testSuite) input(id reminder.ID, enabled bool) reminder.CreateInput {
	return reminder.CreateInput{
		ID:           id,
		MealTime:     reminder.MealTimeLunch,
		ReminderTime: reminder.MustParseTimeOfDay("13:00"),
		Enabled:      enabled,
		Label:        "Lunch Time",
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *testSuite) createReminder(id reminder.ID, enabled bool) {
	s.T().Helper()
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	_, err = uow.Reminders().Create(ctx, s.input(id, enabled))
	if err != nil {
		s.FailNowf("could not create reminder", "%v", err)
	}
	uow.Commit(ctx)
}

func (s *testSuite) list() []reminder.Reminder {
	s.T().Helper()
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	reminders, err := uow.Reminders().List(ctx, reminder.ListOptions{})
	if err != nil {
		s.FailNowf("could not list reminders", "%v", err)
	}
	return reminders
}
