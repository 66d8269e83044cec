// Package detect carries rectangles reported by an external detector (for
// example a face detector watching a camera) into the arena, where they
// reposition moving walls.
package detect

import (
	"encoding/json"
	"fmt"

	"github.com/playmatatu/arena/internal/engine"
)

// Detections is one detector frame: boxes as [left, top, right, bottom].
type Detections struct {
	Frame uint64   `json:"frame"`
	Boxes [][4]int `json:"boxes"`
}

// Parse decodes a detector payload. Both {"frame":..,"boxes":[[l,t,r,b]]}
// and a bare [[l,t,r,b], ...] list are accepted.
func Parse(payload []byte) (Detections, error) {
	var d Detections
	if err := json.Unmarshal(payload, &d); err == nil {
		return d, nil
	}
	var boxes [][4]int
	if err := json.Unmarshal(payload, &boxes); err != nil {
		return Detections{}, fmt.Errorf("parse detections: %w", err)
	}
	return Detections{Boxes: boxes}, nil
}

// Rects converts the boxes to rectangles, dropping degenerate ones.
func (d Detections) Rects() []engine.Rect {
	out := make([]engine.Rect, 0, len(d.Boxes))
	for _, b := range d.Boxes {
		r := engine.Rect{Left: b[0], Top: b[1], Right: b[2], Bottom: b[3]}
		if r.Empty() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Apply fits the world's moving walls to the detected rectangles, first
// moving wall to first usable rectangle. A rectangle that lies outside the
// arena is skipped. Walls left without a rectangle keep their place and
// surplus rectangles are ignored. It returns how many walls moved.
func Apply(w *engine.World, d Detections) int {
	rects := d.Rects()
	next, moved := 0, 0
	for _, wall := range w.Walls() {
		if !wall.Movable {
			continue
		}
		for next < len(rects) {
			err := w.MoveWall(wall.ID, rects[next])
			next++
			if err == nil {
				moved++
				break
			}
		}
	}
	return moved
}
