package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vapetrack/vapetrack/internal/domain"
)

// ─── Profile Repository ─────────────────────────────────────────────────────

// Profile loads the user profile, returning defaults if none is saved yet.
func (d *DB) Profile() (domain.Profile, error) {
	row := d.db.QueryRow(
		`SELECT name, email, onboarded_at, cigs_per_day, cigs_per_pack, pack_cost,
		        has_device, device_name, device_flavor, device_type, device_nicotine,
		        device_reservoir_ml, device_cost, device_rated_puffs,
		        juice_level, bottle_size_ml, xp, smoke_free, smoke_free_since
		 FROM profile WHERE id = 1`,
	)

	var (
		p             domain.Profile
		onboardedAt   sql.NullInt64
		hasDevice     bool
		dev           domain.Device
		smokeFreeAt   sql.NullInt64
	)
	err := row.Scan(
		&p.Name, &p.Email, &onboardedAt, &p.CigarettesPerDay, &p.CigarettesPerPack, &p.PackCost,
		&hasDevice, &dev.Name, &dev.Flavor, &dev.Type, &dev.NicotineMgPerMl,
		&dev.ReservoirMl, &dev.UnitCost, &dev.RatedPuffs,
		&p.JuiceLevelPct, &p.BottleSizeMl, &p.XP, &p.SmokeFree, &smokeFreeAt,
	)
	if err == sql.ErrNoRows {
		return domain.DefaultProfile(), nil
	}
	if err != nil {
		return p, fmt.Errorf("load profile: %w", err)
	}

	if onboardedAt.Valid {
		p.OnboardedAt = time.Unix(onboardedAt.Int64, 0)
	}
	if smokeFreeAt.Valid {
		p.SmokeFreeSince = time.Unix(smokeFreeAt.Int64, 0)
	}
	if hasDevice {
		p.Device = &dev
	}
	return p, nil
}

// SaveProfile upserts the single profile row.
func (d *DB) SaveProfile(p domain.Profile) error {
	dev := domain.Device{}
	hasDevice := p.Device != nil
	if hasDevice {
		dev = *p.Device
	}

	_, err := d.db.Exec(
		`INSERT INTO profile (id, name, email, onboarded_at, cigs_per_day, cigs_per_pack, pack_cost,
		        has_device, device_name, device_flavor, device_type, device_nicotine,
		        device_reservoir_ml, device_cost, device_rated_puffs,
		        juice_level, bottle_size_ml, xp, smoke_free, smoke_free_since)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			onboarded_at=excluded.onboarded_at,
			cigs_per_day=excluded.cigs_per_day,
			cigs_per_pack=excluded.cigs_per_pack,
			pack_cost=excluded.pack_cost,
			has_device=excluded.has_device,
			device_name=excluded.device_name,
			device_flavor=excluded.device_flavor,
			device_type=excluded.device_type,
			device_nicotine=excluded.device_nicotine,
			device_reservoir_ml=excluded.device_reservoir_ml,
			device_cost=excluded.device_cost,
			device_rated_puffs=excluded.device_rated_puffs,
			juice_level=excluded.juice_level,
			bottle_size_ml=excluded.bottle_size_ml,
			xp=excluded.xp,
			smoke_free=excluded.smoke_free,
			smoke_free_since=excluded.smoke_free_since`,
		p.Name, p.Email, nullableUnix(p.OnboardedAt), p.CigarettesPerDay, p.CigarettesPerPack, p.PackCost,
		hasDevice, dev.Name, dev.Flavor, dev.Type, dev.NicotineMgPerMl,
		dev.ReservoirMl, dev.UnitCost, dev.RatedPuffs,
		p.JuiceLevelPct, p.BottleSizeMl, p.XP, p.SmokeFree, nullableUnix(p.SmokeFreeSince),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// AddXP adjusts the XP balance by delta. The resulting balance is never
// allowed below zero; callers gate spends before calling.
func (d *DB) AddXP(delta int64) (int64, error) {
	p, err := d.Profile()
	if err != nil {
		return 0, err
	}
	newXP := p.XP + delta
	if newXP < 0 {
		return p.XP, fmt.Errorf("xp balance would go negative: %d%+d", p.XP, delta)
	}
	p.XP = newXP
	if err := d.SaveProfile(p); err != nil {
		return 0, err
	}
	return newXP, nil
}

// ResetAll wipes every collection and restores the default profile.
// This is the only path that removes log entries or badges.
func (d *DB) ResetAll() error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM puff_log`,
		`DELETE FROM badges`,
		`DELETE FROM reward_purchases`,
		`DELETE FROM reward_equipped`,
		`DELETE FROM juice_purchases`,
		`DELETE FROM state`,
		`DELETE FROM profile`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return d.SaveProfile(domain.DefaultProfile())
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
