package engine

import (
	"math"
	"math/rand"
)

// Ball is a circular body. Rect is its integer bounding box used for
// rendering and collision; Buffer carries the sub-pixel remainder of motion
// between ticks and stays below one pixel per axis after every tick.
type Ball struct {
	ID          int     `json:"id"`
	Rect        Rect    `json:"rect"`
	Velocity    Vec2    `json:"velocity"`
	Radius      int     `json:"radius"`
	Dissipation float64 `json:"dissipation"`
	Buffer      Vec2    `json:"buffer"`
}

// NewBall creates a ball of the given radius with its bounding box's
// top-left corner at topLeft.
func NewBall(radius int, topLeft Point, dissipation float64) (*Ball, error) {
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}
	if dissipation < 0 || dissipation >= 1 || math.IsNaN(dissipation) {
		return nil, ErrInvalidDissipation
	}
	return &Ball{
		Rect: Rect{
			Left:   topLeft.X,
			Top:    topLeft.Y,
			Right:  topLeft.X + 2*radius,
			Bottom: topLeft.Y + 2*radius,
		},
		Radius:      radius,
		Dissipation: dissipation,
	}, nil
}

func (b *Ball) Bounds() Rect { return b.Rect }

// Covers reports whether pixel (x, y) is inside the ball's circular
// footprint. A pixel counts when its center lies within the radius.
func (b *Ball) Covers(x, y int) bool {
	if !b.Rect.Contains(x, y) {
		return false
	}
	r := float64(b.Radius)
	dx := float64(x-b.Rect.Left) + 0.5 - r
	dy := float64(y-b.Rect.Top) + 0.5 - r
	return dx*dx+dy*dy <= r*r
}

// Area is the cross-sectional area.
func (b *Ball) Area() float64 {
	return math.Pi * float64(b.Radius) * float64(b.Radius)
}

// Mass equals the area.
func (b *Ball) Mass() float64 { return b.Area() }

func (b *Ball) Vel() Vec2 { return b.Velocity }

// Center is the integer center of the bounding box.
func (b *Ball) Center() Point { return b.Rect.Center() }

// KineticEnergy is ½mv².
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass() * b.Velocity.MagnitudeSquared()
}

// Accelerate applies one tick of input.
func (b *Ball) Accelerate(in Input, dv float64) {
	b.Velocity = b.Velocity.Plus(in.Delta(dv))
}

// Integrate adds the velocity to the sub-pixel buffer and commits the whole
// pixel part of it, truncated toward zero.
func (b *Ball) Integrate() {
	b.Buffer = b.Buffer.Plus(b.Velocity)
	step := b.Buffer.Trunc()
	if step.IsZero() {
		return
	}
	b.Rect = b.Rect.Translate(int(step.X), int(step.Y))
	b.Buffer = b.Buffer.Minus(step)
}

// restitution is the factor applied to a reflected velocity component.
func (b *Ball) restitution() float64 {
	return 1 - b.Dissipation
}

func (b *Ball) reflectX() { b.Velocity.X *= -b.restitution() }
func (b *Ball) reflectY() { b.Velocity.Y *= -b.restitution() }

// BounceBounds reflects each velocity axis whose next step would carry an
// edge out of the arena. It returns the reflected axes.
func (b *Ball) BounceBounds(arena Rect) (x, y bool) {
	if float64(b.Rect.Left)+b.Velocity.X < float64(arena.Left) ||
		float64(b.Rect.Right)+b.Velocity.X > float64(arena.Right) {
		b.reflectX()
		x = true
	}
	if float64(b.Rect.Top)+b.Velocity.Y < float64(arena.Top) ||
		float64(b.Rect.Bottom)+b.Velocity.Y > float64(arena.Bottom) {
		b.reflectY()
		y = true
	}
	return x, y
}

// Clamp pins the bounding box inside the arena.
func (b *Ball) Clamp(arena Rect) {
	b.Rect = b.Rect.ClampInto(arena)
}

// Move shifts the ball by whole pixels without touching the buffer.
func (b *Ball) Move(dx, dy int) {
	b.Rect = b.Rect.Translate(dx, dy)
}

// circlesOverlap is the exact narrow-phase test; touching circles collide.
func circlesOverlap(a, b *Ball) bool {
	ca, cb := a.Center(), b.Center()
	dx := ca.X - cb.X
	dy := ca.Y - cb.Y
	rr := a.Radius + b.Radius
	return dx*dx+dy*dy <= rr*rr
}

// RandomPosition returns a top-left corner drawn uniformly from
// [margin, width-margin) x [margin, height-margin) of the arena.
func RandomPosition(rng *rand.Rand, arena Rect, margin int) (Point, error) {
	spanX := arena.Width() - 2*margin
	spanY := arena.Height() - 2*margin
	if spanX <= 0 || spanY <= 0 {
		return Point{}, ErrBallTooLarge
	}
	return Point{
		X: arena.Left + margin + rng.Intn(spanX),
		Y: arena.Top + margin + rng.Intn(spanY),
	}, nil
}
