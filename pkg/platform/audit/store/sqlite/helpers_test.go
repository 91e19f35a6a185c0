package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"eventcare/pkg/platform/audit/store/sqlite"
)

// openTestDB returns an in-memory SQLite connection migrated like production.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Shared cache keeps the database alive while the pool holds a connection.
	dsn := fmt.Sprintf(
		"file:audit_%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		uuid.NewString(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}
	if err := sqlite.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestStore(t *testing.T) (*sqlite.Store, *sql.DB) {
	t.Helper()

	conn := openTestDB(t)
	w := sqlite.NewWriter(conn)
	t.Cleanup(func() { w.Close() })
	return sqlite.NewStore(conn, w), conn
}
