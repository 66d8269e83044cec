package store

import "time"

// Run is one simulation session.
type Run struct {
	ID          int64        `db:"id" json:"id"`
	Width       int          `db:"width" json:"width"`
	Height      int          `db:"height" json:"height"`
	NBalls      int          `db:"n_balls" json:"n_balls"`
	BallRadius  int          `db:"ball_radius" json:"ball_radius"`
	Dissipation float64      `db:"dissipation" json:"dissipation"`
	Policy      string       `db:"policy" json:"policy"`
	Seed        int64        `db:"seed" json:"seed"`
	FPS         int          `db:"fps" json:"fps"`
	StartedAt   time.Time    `db:"started_at" json:"started_at"`
	StoppedAt   *time.Time   `db:"stopped_at" json:"stopped_at,omitempty"`
	LastTick    int64        `db:"last_tick" json:"last_tick"`
}

// SnapshotRow is a stored tick.
type SnapshotRow struct {
	ID        int64     `db:"id" json:"id"`
	RunID     int64     `db:"run_id" json:"run_id"`
	Tick      int64     `db:"tick" json:"tick"`
	Payload   []byte    `db:"payload" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventRow is a stored collision event.
type EventRow struct {
	ID       int64   `db:"id" json:"id"`
	RunID    int64   `db:"run_id" json:"run_id"`
	Tick     int64   `db:"tick" json:"tick"`
	Kind     string  `db:"kind" json:"kind"`
	BallID   int     `db:"ball_id" json:"ball_id"`
	TargetID int     `db:"target_id" json:"target_id"`
	Speed    float64 `db:"speed" json:"speed"`
}
