package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/2beens/myniu/pkg"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// OpenSqlite opens (creating if needed) the sqlite database file at path.
// Transactions take the write lock up front so concurrent upserts on the
// same date queue on busy_timeout instead of failing with SQLITE_BUSY.
func OpenSqlite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := pkg.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("prepare sqlite dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	return db, nil
}
