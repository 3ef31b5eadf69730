package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepo is the local key/value store backing the save record and preferences.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value for key. ok is false when the key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return v, true, nil
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	if err := upsert(ctx, r.db, key, value); err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

// SetMany writes all entries in one transaction.
func (r *KVRepo) SetMany(ctx context.Context, entries ...Entry) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range entries {
			if err := upsert(ctx, tx, e.Key, e.Value); err != nil {
				return fmt.Errorf("kv set %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

func (r *KVRepo) Delete(ctx context.Context, keys ...string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return fmt.Errorf("kv delete %s: %w", k, err)
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}
