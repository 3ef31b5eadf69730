package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Audit trail of every XP/coin award; the save record only keeps totals.
		`CREATE TABLE IF NOT EXISTS award_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			ref TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			awarded_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_award_log_awarded_at ON award_log(awarded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
