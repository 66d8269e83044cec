// Package sim drives an engine.World at a fixed tick rate and fans its
// snapshots out to renderers, pub/sub and storage.
package sim

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/playmatatu/arena/internal/detect"
	"github.com/playmatatu/arena/internal/engine"
	"github.com/playmatatu/arena/internal/frame"
	"github.com/playmatatu/arena/internal/snapshot"
)

// maxPendingEvents caps the events carried into one stored snapshot.
const maxPendingEvents = 1024

// Publisher receives sampled snapshots. A snapshot is shared by every
// publisher and must not be modified.
type Publisher interface {
	Publish(ctx context.Context, s *snapshot.Snapshot) error
}

// Recorder stores sampled snapshots for a run.
type Recorder interface {
	SaveSnapshot(ctx context.Context, runID int64, s *snapshot.Snapshot) error
}

// Options tune how often the runner ticks and samples.
type Options struct {
	FPS            int
	BroadcastEvery int   // ticks between published snapshots, <= 0 means every tick
	PersistEvery   int   // ticks between stored snapshots, <= 0 disables storage
	RunID          int64 // passed to the Recorder
}

// Runner owns one World. Only the tick loop advances it; other goroutines
// reach it through the input and detection slots or through MoveWall.
type Runner struct {
	mu    sync.Mutex
	world *engine.World
	opts  Options

	input      *frame.Slot[engine.Input]
	detections *frame.Slot[detect.Detections]
	latest     *frame.Slot[*snapshot.Snapshot]
	broadcast  *frame.Slot[*snapshot.Snapshot]
	persist    *frame.Slot[*snapshot.Snapshot]

	lastDetection uint64
	pending       []snapshot.Event

	publishers []Publisher
	recorder   Recorder
}

// NewRunner wraps world. The world must not be used directly afterwards.
func NewRunner(world *engine.World, opts Options) *Runner {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.BroadcastEvery <= 0 {
		opts.BroadcastEvery = 1
	}
	r := &Runner{
		world:      world,
		opts:       opts,
		input:      frame.NewSlot[engine.Input](),
		detections: frame.NewSlot[detect.Detections](),
		latest:     frame.NewSlot[*snapshot.Snapshot](),
		broadcast:  frame.NewSlot[*snapshot.Snapshot](),
		persist:    frame.NewSlot[*snapshot.Snapshot](),
	}
	r.latest.Put(snapshot.FromWorld(world))
	return r
}

// AddPublisher registers p. Call before Run.
func (r *Runner) AddPublisher(p Publisher) {
	r.publishers = append(r.publishers, p)
}

// SetRecorder registers the store. Call before Run.
func (r *Runner) SetRecorder(rec Recorder) {
	r.recorder = rec
}

// SetInput replaces the held directions applied from the next tick on.
func (r *Runner) SetInput(in engine.Input) {
	r.input.Put(in)
}

// Input returns the held directions.
func (r *Runner) Input() engine.Input {
	in, _ := r.input.Latest()
	return in
}

// Detections is the slot the detection subscriber writes into.
func (r *Runner) Detections() *frame.Slot[detect.Detections] {
	return r.detections
}

// Latest returns the snapshot of the last completed tick.
func (r *Runner) Latest() *snapshot.Snapshot {
	s, _ := r.latest.Latest()
	return s
}

// MoveWall refits a moving wall between ticks.
func (r *Runner) MoveWall(id int, rect engine.Rect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.MoveWall(id, rect)
}

// Step runs exactly one tick and returns its snapshot.
func (r *Runner) Step() *snapshot.Snapshot {
	in := r.Input()

	r.mu.Lock()
	if d, seq := r.detections.Latest(); seq != r.lastDetection {
		r.lastDetection = seq
		detect.Apply(r.world, d)
	}
	r.world.Step(in)
	snap := snapshot.FromWorld(r.world)
	r.mu.Unlock()

	r.latest.Put(snap)

	tick := int(snap.Tick)
	if tick%r.opts.BroadcastEvery == 0 {
		r.broadcast.Put(snap)
	}

	if r.opts.PersistEvery > 0 {
		r.pending = append(r.pending, snap.Events...)
		if len(r.pending) > maxPendingEvents {
			r.pending = r.pending[len(r.pending)-maxPendingEvents:]
		}
		if tick%r.opts.PersistEvery == 0 {
			stored := *snap
			stored.Events = r.pending
			r.pending = nil
			r.persist.Put(&stored)
		}
	}
	return snap
}

// Run ticks until ctx is cancelled. A tick in progress always completes.
func (r *Runner) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.opts.FPS)
	log.Printf("[SIM] runner started: fps=%d balls=%d walls=%d", r.opts.FPS, len(r.world.Balls()), len(r.world.Walls()))

	var wg sync.WaitGroup
	if len(r.publishers) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.drain(ctx, r.broadcast, r.publish)
		}()
	}
	if r.recorder != nil && r.opts.PersistEvery > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.drain(ctx, r.persist, r.record)
		}()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			log.Printf("[SIM] runner stopped at tick %d", r.Latest().Tick)
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}

// drain hands each new value of slot to fn. Values written while fn runs
// collapse into the newest one.
func (r *Runner) drain(ctx context.Context, slot *frame.Slot[*snapshot.Snapshot], fn func(context.Context, *snapshot.Snapshot)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-slot.Changed():
			if s, _ := slot.Latest(); s != nil {
				fn(ctx, s)
			}
		}
	}
}

func (r *Runner) publish(ctx context.Context, s *snapshot.Snapshot) {
	for _, p := range r.publishers {
		if err := p.Publish(ctx, s); err != nil && ctx.Err() == nil {
			log.Printf("[SIM] publish tick %d failed: %v", s.Tick, err)
		}
	}
}

func (r *Runner) record(ctx context.Context, s *snapshot.Snapshot) {
	if err := r.recorder.SaveSnapshot(ctx, r.opts.RunID, s); err != nil && ctx.Err() == nil {
		log.Printf("[STORE] save tick %d for run %d failed: %v", s.Tick, r.opts.RunID, err)
	}
}
