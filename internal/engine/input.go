package engine

import "strings"

// Input is the set of directions held during a tick.
type Input uint8

const (
	Up Input = 1 << iota
	Down
	Left
	Right
)

// NoInput holds no direction.
const NoInput Input = 0

// Has reports whether every direction in d is held.
func (in Input) Has(d Input) bool {
	return in&d == d && d != 0
}

// Delta converts held directions into a velocity change of dv per axis.
// Opposite directions cancel.
func (in Input) Delta(dv float64) Vec2 {
	var delta Vec2
	if in.Has(Up) {
		delta.Y -= dv
	}
	if in.Has(Down) {
		delta.Y += dv
	}
	if in.Has(Left) {
		delta.X -= dv
	}
	if in.Has(Right) {
		delta.X += dv
	}
	return delta
}

func (in Input) String() string {
	if in == NoInput {
		return "none"
	}
	var parts []string
	for _, d := range []struct {
		bit  Input
		name string
	}{{Up, "up"}, {Down, "down"}, {Left, "left"}, {Right, "right"}} {
		if in.Has(d.bit) {
			parts = append(parts, d.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputFrom builds an Input from individual held flags.
func InputFrom(up, down, left, right bool) Input {
	var in Input
	if up {
		in |= Up
	}
	if down {
		in |= Down
	}
	if left {
		in |= Left
	}
	if right {
		in |= Right
	}
	return in
}
