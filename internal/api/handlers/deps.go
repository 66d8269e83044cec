package handlers

import (
	"context"

	"github.com/playmatatu/arena/internal/engine"
	"github.com/playmatatu/arena/internal/snapshot"
	"github.com/playmatatu/arena/internal/store"
)

// WorldSource yields the newest completed tick.
type WorldSource interface {
	Latest() *snapshot.Snapshot
}

// Controller changes what the next tick sees.
type Controller interface {
	SetInput(in engine.Input)
	Input() engine.Input
	MoveWall(id int, r engine.Rect) error
}

// RunStore reads persisted runs.
type RunStore interface {
	ListRuns(ctx context.Context, limit, offset int) ([]store.Run, error)
	LatestSnapshot(ctx context.Context, runID int64) (*snapshot.Snapshot, error)
	Events(ctx context.Context, runID int64, limit int) ([]store.EventRow, error)
}

// ClientCounter reports connected renderers.
type ClientCounter interface {
	ClientCount() int
}
