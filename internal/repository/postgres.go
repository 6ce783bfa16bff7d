package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleet-scheduler/internal/scheduler"
)

// DefaultKeepVersions is how many snapshots SnapshotRepo retains.
const DefaultKeepVersions = 50

// SnapshotRepo stores snapshots in postgres, one row per version.
type SnapshotRepo struct {
	db   *pgxpool.Pool
	keep int64
}

// NewSnapshotRepo creates a repository keeping the last keep versions.
func NewSnapshotRepo(db *pgxpool.Pool, keep int) *SnapshotRepo {
	if keep <= 0 {
		keep = DefaultKeepVersions
	}
	return &SnapshotRepo{db: db, keep: int64(keep)}
}

// Save inserts the snapshot and prunes old versions in one transaction.
// Saving a version twice is a no-op.
func (r *SnapshotRepo) Save(ctx context.Context, snap scheduler.Snapshot) error {
	payload, err := scheduler.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO schedule_snapshots (version, payload, saved_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (version) DO NOTHING`
		if _, err := tx.Exec(ctx, insert, snap.Version, payload, snap.SavedAt); err != nil {
			return fmt.Errorf("insert snapshot v%d: %w", snap.Version, err)
		}
		const prune = `DELETE FROM schedule_snapshots WHERE version <= $1`
		if _, err := tx.Exec(ctx, prune, snap.Version-r.keep); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	})
}

// LoadLatest returns the snapshot with the highest version.
func (r *SnapshotRepo) LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error) {
	const q = `SELECT payload FROM schedule_snapshots ORDER BY version DESC LIMIT 1`

	var payload []byte
	if err := r.db.QueryRow(ctx, q).Scan(&payload); err != nil {
		if IsNotFound(err) {
			return scheduler.Snapshot{}, false, nil
		}
		return scheduler.Snapshot{}, false, fmt.Errorf("load latest snapshot: %w", err)
	}
	snap, err := scheduler.DecodeSnapshot(payload)
	if err != nil {
		return scheduler.Snapshot{}, false, err
	}
	return snap, true, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *SnapshotRepo) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
