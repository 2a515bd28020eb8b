package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

const TEST_POSTGRESQL_URL = "TEST_POSTGRESQL_URL"

// SkipWithoutPostgres skips integration tests when no test database is configured.
func SkipWithoutPostgres(t *testing.T) {
	t.Helper()
	if os.Getenv(TEST_POSTGRESQL_URL) == "" {
		t.Skipf("%s is not set.", TEST_POSTGRESQL_URL)
	}
}

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv(TEST_POSTGRESQL_URL)
	if connString == "" {
		panic("TEST_POSTGRESQL_URL must be set.")
	}
	if err := MigratePostgres(connString); err != nil {
		panic(fmt.Sprintf("Could not apply DB migrations %v.", err))
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE reminder")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
