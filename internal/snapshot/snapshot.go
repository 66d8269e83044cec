package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/playmatatu/arena/internal/engine"
	"github.com/vmihailenco/msgpack/v5"
)

// Ball is the render-facing state of one ball after a tick.
type Ball struct {
	ID     int     `json:"id" msgpack:"id"`
	X      int     `json:"x" msgpack:"x"` // bounding box left
	Y      int     `json:"y" msgpack:"y"` // bounding box top
	Radius int     `json:"r" msgpack:"r"`
	VX     float64 `json:"vx" msgpack:"vx"`
	VY     float64 `json:"vy" msgpack:"vy"`
}

// Wall is the render-facing state of one wall.
type Wall struct {
	ID      int  `json:"id" msgpack:"id"`
	Left    int  `json:"left" msgpack:"l"`
	Top     int  `json:"top" msgpack:"t"`
	Right   int  `json:"right" msgpack:"r"`
	Bottom  int  `json:"bottom" msgpack:"b"`
	Movable bool `json:"movable,omitempty" msgpack:"m,omitempty"`
}

// Event mirrors engine.CollisionEvent on the wire.
type Event struct {
	Type     string  `json:"type" msgpack:"type"`
	BallID   int     `json:"ball_id" msgpack:"ball"`
	TargetID int     `json:"target_id" msgpack:"target"`
	Speed    float64 `json:"speed" msgpack:"speed"`
}

// Snapshot is everything a renderer needs to draw one tick.
type Snapshot struct {
	Tick   uint64  `json:"tick" msgpack:"tick"`
	Width  int     `json:"width" msgpack:"w"`
	Height int     `json:"height" msgpack:"h"`
	Balls  []Ball  `json:"balls" msgpack:"balls"`
	Walls  []Wall  `json:"walls" msgpack:"walls"`
	Events []Event `json:"events,omitempty" msgpack:"events,omitempty"`
}

// FromWorld copies the world's current state. The result shares nothing
// with the world and is safe to hand to other goroutines.
func FromWorld(w *engine.World) *Snapshot {
	arena := w.Arena()
	s := &Snapshot{
		Tick:   w.Tick(),
		Width:  arena.Width(),
		Height: arena.Height(),
		Balls:  make([]Ball, 0, len(w.Balls())),
		Walls:  make([]Wall, 0, len(w.Walls())),
	}
	for _, b := range w.Balls() {
		s.Balls = append(s.Balls, Ball{
			ID:     b.ID,
			X:      b.Rect.Left,
			Y:      b.Rect.Top,
			Radius: b.Radius,
			VX:     b.Velocity.X,
			VY:     b.Velocity.Y,
		})
	}
	for _, wl := range w.Walls() {
		s.Walls = append(s.Walls, Wall{
			ID:      wl.ID,
			Left:    wl.Rect.Left,
			Top:     wl.Rect.Top,
			Right:   wl.Rect.Right,
			Bottom:  wl.Rect.Bottom,
			Movable: wl.Movable,
		})
	}
	for _, e := range w.Events() {
		s.Events = append(s.Events, Event{Type: e.Type, BallID: e.BallID, TargetID: e.TargetID, Speed: e.Speed})
	}
	return s
}

// Encode returns the compact binary form.
func Encode(s *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses the compact binary form.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// JSON returns the JSON form used by HTTP, websockets and the store.
func JSON(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}
