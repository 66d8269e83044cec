package engine

import "math"

// Config holds the engine's setup parameters.
type Config struct {
	Width        int
	Height       int
	Acceleration float64 // dv per held direction per tick
	Policy       BallCollisionPolicy
}

// DefaultConfig returns the reference arena setup.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Acceleration: DefaultAcceleration,
		Policy:       PolicyElastic,
	}
}

// CollisionEvent records a resolved collision during the last tick.
type CollisionEvent struct {
	Type     string  `json:"type"`      // "ball", "wall", "boundary"
	BallID   int     `json:"ball_id"`
	TargetID int     `json:"target_id"` // ball ID, wall ID, or -1 for the boundary
	Speed    float64 `json:"speed"`     // speed of BallID after resolution
}

const (
	EventBall     = "ball"
	EventWall     = "wall"
	EventBoundary = "boundary"
)

// World owns the balls and walls of one arena and advances them tick by
// tick. Ball and wall IDs are indices into creation order and stay stable
// for the life of the world.
//
// Step processes balls in ID order. Resolving a pair mutates both balls in
// place, so a ball updated earlier in a tick may be revised again by a later
// ball's collision in the same tick.
type World struct {
	cfg    Config
	arena  Rect
	balls  []*Ball
	walls  []*Wall
	events []CollisionEvent
	tick   uint64
}

// NewWorld creates an empty arena.
func NewWorld(cfg Config) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidArena
	}
	if cfg.Acceleration < 0 || math.IsNaN(cfg.Acceleration) {
		cfg.Acceleration = DefaultAcceleration
	}
	return &World{
		cfg:    cfg,
		arena:  Rect{Left: 0, Top: 0, Right: cfg.Width, Bottom: cfg.Height},
		events: make([]CollisionEvent, 0),
	}, nil
}

// AddBall adds b to the world and returns its handle.
func (w *World) AddBall(b *Ball) (int, error) {
	if b == nil || b.Radius <= 0 {
		return 0, ErrInvalidRadius
	}
	if b.Rect.Width() > w.arena.Width() || b.Rect.Height() > w.arena.Height() {
		return 0, ErrBallTooLarge
	}
	b.ID = len(w.balls)
	b.Clamp(w.arena)
	w.balls = append(w.balls, b)
	return b.ID, nil
}

// AddWall adds wall to the world and returns its handle.
func (w *World) AddWall(wall *Wall) (int, error) {
	if wall == nil || wall.Rect.Empty() {
		return 0, ErrInvalidRect
	}
	wall.ID = len(w.walls)
	w.walls = append(w.walls, wall)
	return wall.ID, nil
}

// Ball returns the ball with the given handle.
func (w *World) Ball(id int) (*Ball, error) {
	if id < 0 || id >= len(w.balls) {
		return nil, ErrUnknownBall
	}
	return w.balls[id], nil
}

// Wall returns the wall with the given handle.
func (w *World) Wall(id int) (*Wall, error) {
	if id < 0 || id >= len(w.walls) {
		return nil, ErrUnknownWall
	}
	return w.walls[id], nil
}

// MoveWall refits a movable wall. The new rectangle is clipped to the arena.
func (w *World) MoveWall(id int, r Rect) error {
	wall, err := w.Wall(id)
	if err != nil {
		return err
	}
	return wall.Fit(r.Intersect(w.arena))
}

// Balls returns the balls in handle order. The slice is owned by the world.
func (w *World) Balls() []*Ball { return w.balls }

// Walls returns the walls in handle order. The slice is owned by the world.
func (w *World) Walls() []*Wall { return w.walls }

// Events returns the collisions resolved during the last Step.
func (w *World) Events() []CollisionEvent { return w.events }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// Arena returns the bounding rectangle of the world.
func (w *World) Arena() Rect { return w.arena }

// Config returns the world's configuration.
func (w *World) Config() Config { return w.cfg }

// Step advances the world by one tick with the same input applied to every
// ball.
func (w *World) Step(in Input) {
	w.events = w.events[:0]
	for i := range w.balls {
		w.updateBall(i, in)
	}
	// Later pairs can push an already-clamped ball out; clamp again.
	for _, b := range w.balls {
		b.Clamp(w.arena)
	}
	w.tick++
}

func (w *World) updateBall(i int, in Input) {
	b := w.balls[i]

	b.Accelerate(in, w.cfg.Acceleration)
	b.Integrate()

	if x, y := b.BounceBounds(w.arena); x || y {
		w.record(EventBoundary, b, -1)
	}

	for _, j := range w.overlapping(i) {
		if circlesOverlap(b, w.balls[j]) {
			w.resolveBalls(i, j)
		}
	}

	w.collideWall(i)

	b.Clamp(w.arena)
}

// overlapping is the broad phase: every other ball whose bounding box
// overlaps ball i, in handle order.
func (w *World) overlapping(i int) []int {
	var out []int
	r := w.balls[i].Rect
	for j, o := range w.balls {
		if j != i && r.Overlaps(o.Rect) {
			out = append(out, j)
		}
	}
	return out
}

// resolveBalls applies the collision response to balls i and j: new
// velocities along the line of centers, then a push apart of any overlap.
func (w *World) resolveBalls(i, j int) {
	a, o := w.balls[i], w.balls[j]
	ca, co := a.Center(), o.Center()

	e := 1.0
	if w.cfg.Policy == PolicyDissipative {
		e = a.restitution()
	}
	a.Velocity, o.Velocity = InelasticCollision2D(
		a.Velocity, o.Velocity, a.Mass(), o.Mass(), ca.Vec(), co.Vec(), e)

	dist := distance(ca, co)
	if dist < MinDistance {
		// Coincident centers have no line of centers. Split along x with
		// the higher handle going right.
		push := int(math.Ceil((float64(a.Radius+o.Radius) + SeparationMargin) / 2))
		if a.ID < o.ID {
			push = -push
		}
		a.Move(push, 0)
		o.Move(-push, 0)
		w.record(EventBall, a, o.ID)
		w.record(EventBall, o, a.ID)
		return
	}
	overlap := float64(a.Radius+o.Radius) - dist
	if overlap > 0 {
		cos := float64(ca.X-co.X) / dist
		sin := float64(ca.Y-co.Y) / dist
		dx := int((overlap + SeparationMargin) * cos)
		dy := int((overlap + SeparationMargin) * sin)
		a.Move(dx, dy)
		o.Move(-dx, -dy)
	}

	w.record(EventBall, a, o.ID)
	w.record(EventBall, o, a.ID)
}

// collideWall resolves ball i against the first wall, in handle order, whose
// bounding box it overlaps. A bounding-box hit with no shared pixel is
// ignored.
func (w *World) collideWall(i int) {
	b := w.balls[i]
	var wall *Wall
	for _, candidate := range w.walls {
		if b.Rect.Overlaps(candidate.Rect) {
			wall = candidate
			break
		}
	}
	if wall == nil {
		return
	}
	contact, ok := ContactPoint(b, wall)
	if !ok {
		return
	}

	// The ball ends WallClearance empty pixels away from the contact pixel.
	var dx, dy int
	switch SideOf(contact, wall.Rect).Side {
	case SideLeft:
		b.reflectX()
		dx = contact.X - b.Rect.Right - WallClearance
	case SideTop:
		b.reflectY()
		dy = contact.Y - b.Rect.Bottom - WallClearance
	case SideRight:
		b.reflectX()
		dx = contact.X + 1 + WallClearance - b.Rect.Left
	case SideBottom:
		b.reflectY()
		dy = contact.Y + 1 + WallClearance - b.Rect.Top
	}
	b.Move(dx, dy)

	w.record(EventWall, b, wall.ID)
}

func (w *World) record(kind string, b *Ball, target int) {
	w.events = append(w.events, CollisionEvent{
		Type:     kind,
		BallID:   b.ID,
		TargetID: target,
		Speed:    b.Velocity.Magnitude(),
	})
}
