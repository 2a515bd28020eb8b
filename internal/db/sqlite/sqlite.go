// Package sqlite stores reminders in a single SQLite file for single-device installations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"mealremind/internal/db"

	_ "modernc.org/sqlite"
)

// Open applies migrations and opens the database file at path.
// SQLite allows one writer, so the pool is limited to a single connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := db.MigrateSQLite(path); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
