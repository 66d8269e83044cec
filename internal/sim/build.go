package sim

import (
	"fmt"
	"math/rand"

	"github.com/playmatatu/arena/internal/config"
	"github.com/playmatatu/arena/internal/engine"
)

// BuildWorld creates the arena described by cfg: the configured static
// walls, MovingWalls parked outside the arena until a detection places
// them, and NBalls balls at seeded random positions.
func BuildWorld(cfg *config.Config) (*engine.World, error) {
	ec, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	w, err := engine.NewWorld(ec)
	if err != nil {
		return nil, err
	}

	rects, err := cfg.WallRects()
	if err != nil {
		return nil, err
	}
	for _, r := range rects {
		wall, err := engine.NewWall(r.Top, r.Left, r.Bottom, r.Right)
		if err != nil {
			return nil, err
		}
		if _, err := w.AddWall(wall); err != nil {
			return nil, err
		}
	}

	for i := 0; i < cfg.MovingWalls; i++ {
		wall, err := engine.NewMovingWall(-2, -2, -1, -1)
		if err != nil {
			return nil, err
		}
		if _, err := w.AddWall(wall); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := engine.Populate(w, cfg.NBalls, cfg.BallRadius, cfg.Dissipation, rng); err != nil {
		return nil, fmt.Errorf("populate %d balls: %w", cfg.NBalls, err)
	}
	return w, nil
}

// OptionsFrom maps the runner settings out of cfg.
func OptionsFrom(cfg *config.Config, runID int64) Options {
	return Options{
		FPS:            cfg.FPS,
		BroadcastEvery: cfg.BroadcastEvery,
		PersistEvery:   cfg.PersistEvery,
		RunID:          runID,
	}
}
