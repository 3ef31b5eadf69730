package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type AwardRepo struct {
	db *sql.DB
}

func NewAwardRepo(db *sql.DB) *AwardRepo {
	return &AwardRepo{db: db}
}

func (r *AwardRepo) Insert(ctx context.Context, source, ref string, xp, coins int, awardedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO award_log (source, ref, xp, coins, awarded_at)
		VALUES (?, ?, ?, ?, ?)
	`, source, ref, xp, coins, awardedAt)
	if err != nil {
		return 0, fmt.Errorf("award insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("award last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the newest awards first.
func (r *AwardRepo) Recent(ctx context.Context, limit int) ([]Award, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, ref, xp, coins, awarded_at
		FROM award_log
		ORDER BY awarded_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("award recent: %w", err)
	}
	defer rows.Close()

	var out []Award
	for rows.Next() {
		var a Award
		if err := rows.Scan(&a.ID, &a.Source, &a.Ref, &a.XP, &a.Coins, &a.AwardedAt); err != nil {
			return nil, fmt.Errorf("award scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("award rows: %w", err)
	}
	return out, nil
}

func (r *AwardRepo) CountSince(ctx context.Context, source string, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM award_log
		WHERE source = ? AND awarded_at >= ?
	`, source, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("award count: %w", err)
	}
	return n, nil
}

func (r *AwardRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM award_log`); err != nil {
		return fmt.Errorf("award clear: %w", err)
	}
	return nil
}
