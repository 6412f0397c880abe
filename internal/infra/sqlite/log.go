package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vapetrack/vapetrack/internal/domain"
)

// ─── Puff Log Repository ────────────────────────────────────────────────────

// AppendPuff appends one log entry and returns it with its rowid.
func (d *DB) AppendPuff(ts time.Time, source domain.LogSource) (domain.LogEntry, error) {
	res, err := d.db.Exec(
		`INSERT INTO puff_log (timestamp, source) VALUES (?, ?)`,
		ts.Unix(), string(source),
	)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("append puff: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.LogEntry{}, err
	}
	return domain.LogEntry{ID: id, Timestamp: ts, Source: source}, nil
}

// AppendPuffs bulk-appends n entries with the same timestamp in one
// transaction. Used by juice-level synthesis.
func (d *DB) AppendPuffs(n int, ts time.Time, source domain.LogSource) error {
	if n <= 0 {
		return nil
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO puff_log (timestamp, source) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(ts.Unix(), string(source)); err != nil {
			return fmt.Errorf("append puff %d/%d: %w", i+1, n, err)
		}
	}
	return tx.Commit()
}

// PuffCount returns the total number of logged puffs.
func (d *DB) PuffCount() (int64, error) {
	var n int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM puff_log`).Scan(&n)
	return n, err
}

// PuffCountBetween counts puffs with from <= timestamp < to.
func (d *DB) PuffCountBetween(from, to time.Time) (int64, error) {
	var n int64
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM puff_log WHERE timestamp >= ? AND timestamp < ?`,
		from.Unix(), to.Unix(),
	).Scan(&n)
	return n, err
}

// PuffCountSince counts puffs with timestamp >= from.
func (d *DB) PuffCountSince(from time.Time) (int64, error) {
	var n int64
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM puff_log WHERE timestamp >= ?`, from.Unix(),
	).Scan(&n)
	return n, err
}

// LastPuffTime returns the newest log timestamp, or zero time if the
// log is empty.
func (d *DB) LastPuffTime() (time.Time, error) {
	var ts sql.NullInt64
	err := d.db.QueryRow(`SELECT MAX(timestamp) FROM puff_log`).Scan(&ts)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}

// RecentPuffs returns the newest entries, most recent first.
func (d *DB) RecentPuffs(limit int) ([]domain.LogEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, source FROM puff_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var ts int64
		var src string
		if err := rows.Scan(&e.ID, &ts, &src); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		e.Source = domain.LogSource(src)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Juice Purchase Repository ──────────────────────────────────────────────

// InsertJuicePurchase records a new-reservoir checkpoint. Immutable
// after creation.
func (d *DB) InsertJuicePurchase(jp domain.JuicePurchase) error {
	_, err := d.db.Exec(
		`INSERT INTO juice_purchases (id, timestamp, puffs_since_previous) VALUES (?, ?, ?)`,
		jp.ID, jp.Timestamp.Unix(), jp.PuffsSincePrevious,
	)
	if err != nil {
		return fmt.Errorf("insert juice purchase: %w", err)
	}
	return nil
}

// LastJuicePurchase returns the most recent checkpoint, or nil if none.
func (d *DB) LastJuicePurchase() (*domain.JuicePurchase, error) {
	row := d.db.QueryRow(
		`SELECT id, timestamp, puffs_since_previous FROM juice_purchases
		 ORDER BY timestamp DESC, id DESC LIMIT 1`,
	)
	return scanJuicePurchase(row)
}

// ListJuicePurchases returns all checkpoints in chronological order.
func (d *DB) ListJuicePurchases() ([]domain.JuicePurchase, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, puffs_since_previous FROM juice_purchases ORDER BY timestamp ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JuicePurchase
	for rows.Next() {
		jp, err := scanJuicePurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *jp)
	}
	return out, rows.Err()
}

func scanJuicePurchase(s scanner) (*domain.JuicePurchase, error) {
	var jp domain.JuicePurchase
	var ts int64
	err := s.Scan(&jp.ID, &ts, &jp.PuffsSincePrevious)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}
	jp.Timestamp = time.Unix(ts, 0)
	return &jp, nil
}
