package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/arena/internal/snapshot"
)

// Store persists runs, sampled snapshots and their collision events.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateRun inserts a run and returns it with its ID and start time.
func (s *Store) CreateRun(ctx context.Context, r Run) (*Run, error) {
	row := s.db.QueryRowxContext(ctx, `
		INSERT INTO runs (width, height, n_balls, ball_radius, dissipation, policy, seed, fps, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, started_at
	`, r.Width, r.Height, r.NBalls, r.BallRadius, r.Dissipation, r.Policy, r.Seed, r.FPS)
	if err := row.Scan(&r.ID, &r.StartedAt); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return &r, nil
}

// StopRun marks a run finished at the given tick.
func (s *Store) StopRun(ctx context.Context, runID int64, lastTick uint64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET stopped_at = NOW(), last_tick = $2 WHERE id = $1`,
		runID, int64(lastTick))
	if err != nil {
		return fmt.Errorf("stop run %d: %w", runID, err)
	}
	return nil
}

// SaveSnapshot stores a snapshot and its events in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, runID int64, snap *snapshot.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, tick, payload, created_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (run_id, tick) DO UPDATE SET payload = EXCLUDED.payload
	`, runID, int64(snap.Tick), string(payload)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, e := range snap.Events {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO collision_events (run_id, tick, kind, ball_id, target_id, speed)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, runID, int64(snap.Tick), e.Type, e.BallID, e.TargetID, e.Speed); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET last_tick = GREATEST(last_tick, $2) WHERE id = $1`,
		runID, int64(snap.Tick)); err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit, offset int) ([]Run, error) {
	runs := []Run{}
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, width, height, n_balls, ball_radius, dissipation, policy, seed, fps, started_at, stopped_at, last_tick
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return runs, err
}

// LatestSnapshot returns the newest stored snapshot of a run.
func (s *Store) LatestSnapshot(ctx context.Context, runID int64) (*snapshot.Snapshot, error) {
	var row SnapshotRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, run_id, tick, payload, created_at
		FROM snapshots
		WHERE run_id = $1
		ORDER BY tick DESC
		LIMIT 1
	`, runID)
	if err != nil {
		return nil, err
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", row.ID, err)
	}
	return &snap, nil
}

// Events returns a run's stored collision events in tick order.
func (s *Store) Events(ctx context.Context, runID int64, limit int) ([]EventRow, error) {
	events := []EventRow{}
	err := s.db.SelectContext(ctx, &events, `
		SELECT id, run_id, tick, kind, ball_id, target_id, speed
		FROM collision_events
		WHERE run_id = $1
		ORDER BY tick, id
		LIMIT $2
	`, runID, limit)
	return events, err
}
