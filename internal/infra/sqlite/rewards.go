package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vapetrack/vapetrack/internal/domain"
)

// ─── Badge Repository ───────────────────────────────────────────────────────

// UnlockBadge records a badge unlock. Returns true if it was newly
// unlocked, false if it was already present (monotonic set semantics).
func (d *DB) UnlockBadge(id string, at time.Time) (bool, error) {
	res, err := d.db.Exec(
		`INSERT INTO badges (id, unlocked_at) VALUES (?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		id, at.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("unlock badge: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// IsBadgeUnlocked checks a single badge.
func (d *DB) IsBadgeUnlocked(id string) (bool, error) {
	var one int
	err := d.db.QueryRow(`SELECT 1 FROM badges WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ListBadges returns all unlocked badges in unlock order.
func (d *DB) ListBadges() ([]domain.UnlockedBadge, error) {
	rows, err := d.db.Query(`SELECT id, unlocked_at FROM badges ORDER BY unlocked_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UnlockedBadge
	for rows.Next() {
		var b domain.UnlockedBadge
		var ts int64
		if err := rows.Scan(&b.ID, &ts); err != nil {
			return nil, err
		}
		b.UnlockedAt = time.Unix(ts, 0)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ─── Reward Repository ──────────────────────────────────────────────────────

// PurchaseReward atomically debits XP and records the purchase: both
// effects or neither. Fails without mutation when the item is already
// owned or the balance is short.
func (d *DB) PurchaseReward(id string, cost int64, at time.Time) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow(`SELECT 1 FROM reward_purchases WHERE id = ?`, id).Scan(&one)
	if err == nil {
		return domain.ErrAlreadyPurchased
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check purchase: %w", err)
	}

	var xp int64
	if err := tx.QueryRow(`SELECT xp FROM profile WHERE id = 1`).Scan(&xp); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInsufficientXP // No profile row yet means zero balance
		}
		return fmt.Errorf("read balance: %w", err)
	}
	if xp < cost {
		return domain.ErrInsufficientXP
	}

	if _, err := tx.Exec(`UPDATE profile SET xp = xp - ? WHERE id = 1`, cost); err != nil {
		return fmt.Errorf("debit xp: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO reward_purchases (id, purchased_at) VALUES (?, ?)`, id, at.Unix(),
	); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}

	return tx.Commit()
}

// IsRewardPurchased checks ownership of a catalog item.
func (d *DB) IsRewardPurchased(id string) (bool, error) {
	var one int
	err := d.db.QueryRow(`SELECT 1 FROM reward_purchases WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ListPurchasedRewards returns all purchases in purchase order.
func (d *DB) ListPurchasedRewards() ([]domain.PurchasedReward, error) {
	rows, err := d.db.Query(`SELECT id, purchased_at FROM reward_purchases ORDER BY purchased_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PurchasedReward
	for rows.Next() {
		var p domain.PurchasedReward
		var ts int64
		if err := rows.Scan(&p.ID, &ts); err != nil {
			return nil, err
		}
		p.PurchasedAt = time.Unix(ts, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetEquipped equips an item in a category, replacing any prior equip.
func (d *DB) SetEquipped(category domain.RewardCategory, itemID string) error {
	_, err := d.db.Exec(
		`INSERT INTO reward_equipped (category, item_id) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET item_id=excluded.item_id`,
		string(category), itemID,
	)
	return err
}

// ClearEquipped unequips a category. Idempotent.
func (d *DB) ClearEquipped(category domain.RewardCategory) error {
	_, err := d.db.Exec(`DELETE FROM reward_equipped WHERE category = ?`, string(category))
	return err
}

// EquippedRewards returns the category → item mapping.
func (d *DB) EquippedRewards() (domain.EquippedRewards, error) {
	rows, err := d.db.Query(`SELECT category, item_id FROM reward_equipped`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(domain.EquippedRewards)
	for rows.Next() {
		var cat, item string
		if err := rows.Scan(&cat, &item); err != nil {
			return nil, err
		}
		out[domain.RewardCategory(cat)] = item
	}
	return out, rows.Err()
}
