package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func addBall(t *testing.T, w *World, radius, x, y int, vel Vec2, dissipation float64) *Ball {
	t.Helper()
	b := mustBall(t, radius, x, y, dissipation)
	b.Velocity = vel
	if _, err := w.AddBall(b); err != nil {
		t.Fatalf("AddBall: %v", err)
	}
	return b
}

func addWall(t *testing.T, w *World, top, left, bottom, right int) *Wall {
	t.Helper()
	wall, err := NewWall(top, left, bottom, right)
	if err != nil {
		t.Fatalf("NewWall: %v", err)
	}
	if _, err := w.AddWall(wall); err != nil {
		t.Fatalf("AddWall: %v", err)
	}
	return wall
}

func momentum(balls ...*Ball) Vec2 {
	var p Vec2
	for _, b := range balls {
		p = p.Plus(b.Velocity.Times(b.Mass()))
	}
	return p
}

func TestNewWorldRejectsInvalidArena(t *testing.T) {
	for _, cfg := range []Config{{Width: 0, Height: 10}, {Width: 10, Height: -1}} {
		if _, err := NewWorld(cfg); !errors.Is(err, ErrInvalidArena) {
			t.Errorf("NewWorld(%+v) err=%v, want ErrInvalidArena", cfg, err)
		}
	}
}

func TestAddBallAssignsStableHandles(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	for i := 0; i < 3; i++ {
		b := addBall(t, w, 5, 100*i+50, 50, Vec2{}, 0)
		if b.ID != i {
			t.Errorf("ball %d got handle %d", i, b.ID)
		}
	}
	if _, err := w.Ball(3); !errors.Is(err, ErrUnknownBall) {
		t.Errorf("Ball(3) err=%v, want ErrUnknownBall", err)
	}
	huge := mustBall(t, 400, 0, 0, 0)
	if _, err := w.AddBall(huge); !errors.Is(err, ErrBallTooLarge) {
		t.Errorf("oversized ball err=%v, want ErrBallTooLarge", err)
	}
}

func TestHeadOnCollisionExchangesVelocities(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 100, 100, NewVec2(5, 0), 0.1)
	b := addBall(t, w, 10, 121, 100, NewVec2(-5, 0), 0.1)

	w.Step(NoInput)

	if !vecAlmostEqual(a.Velocity, NewVec2(-5, 0)) {
		t.Errorf("ball a velocity=%+v, want (-5, 0)", a.Velocity)
	}
	if !vecAlmostEqual(b.Velocity, NewVec2(5, 0)) {
		t.Errorf("ball b velocity=%+v, want (5, 0)", b.Velocity)
	}
	if a.Rect.Top != 100 || b.Rect.Top != 100 {
		t.Errorf("head-on collision moved balls off axis: a.top=%d b.top=%d", a.Rect.Top, b.Rect.Top)
	}

	ballEvents := 0
	for _, e := range w.Events() {
		if e.Type == EventBall {
			ballEvents++
		}
	}
	if ballEvents != 2 {
		t.Errorf("got %d ball events, want 2 (one per participant)", ballEvents)
	}
}

func TestResolveBallsConservesMomentum(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 203, 201, NewVec2(3, 1), 0.1)
	b := addBall(t, w, 15, 218, 205, NewVec2(-2, 0.5), 0.1)

	before := momentum(a, b)
	w.resolveBalls(a.ID, b.ID)
	after := momentum(a, b)

	if !vecAlmostEqual(before, after) {
		t.Errorf("momentum before=%+v after=%+v", before, after)
	}
	if d := distance(a.Center(), b.Center()); d < float64(a.Radius+b.Radius)-1 {
		t.Errorf("balls still deeply overlapping after resolution: distance=%v", d)
	}
}

func TestDissipativePolicyDampsBallCollisions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyDissipative
	w := newTestWorld(t, cfg)
	a := addBall(t, w, 10, 100, 100, NewVec2(4, 0), 0.5)
	b := addBall(t, w, 10, 118, 100, NewVec2(-4, 0), 0.5)

	pBefore := momentum(a, b)
	eBefore := a.KineticEnergy() + b.KineticEnergy()
	w.resolveBalls(a.ID, b.ID)

	if !vecAlmostEqual(pBefore, momentum(a, b)) {
		t.Errorf("momentum before=%+v after=%+v", pBefore, momentum(a, b))
	}
	eAfter := a.KineticEnergy() + b.KineticEnergy()
	if eAfter >= eBefore {
		t.Errorf("dissipative policy should lose energy: before=%v after=%v", eBefore, eAfter)
	}
	// Restitution 0.5: relative speed 8 becomes 4.
	if !almostEqual(b.Velocity.X-a.Velocity.X, 4) {
		t.Errorf("separation speed=%v, want 4", b.Velocity.X-a.Velocity.X)
	}
}

func TestElasticPolicyIgnoresDissipationForBalls(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 100, 100, NewVec2(4, 0), 0.5)
	b := addBall(t, w, 10, 118, 100, NewVec2(-4, 0), 0.5)

	eBefore := a.KineticEnergy() + b.KineticEnergy()
	w.resolveBalls(a.ID, b.ID)
	eAfter := a.KineticEnergy() + b.KineticEnergy()
	if !almostEqual(eBefore, eAfter) {
		t.Errorf("elastic policy changed energy: before=%v after=%v", eBefore, eAfter)
	}
}

func TestOverlappingBallsAreSeparatedWithinTick(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 100, 100, Vec2{}, 0)
	b := addBall(t, w, 10, 110, 103, Vec2{}, 0)

	w.Step(NoInput)

	if d := distance(a.Center(), b.Center()); d < float64(a.Radius+b.Radius) {
		t.Errorf("balls still overlap after step: distance=%v want >= %d", d, a.Radius+b.Radius)
	}
	if !a.Velocity.IsZero() || !b.Velocity.IsZero() {
		t.Errorf("resting balls gained velocity: a=%+v b=%+v", a.Velocity, b.Velocity)
	}
}

func TestRestStateIsIdempotent(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	b := addBall(t, w, 10, 300, 300, Vec2{}, 0.1)
	rect, buf := b.Rect, b.Buffer

	for i := 0; i < 10; i++ {
		w.Step(NoInput)
	}

	if b.Rect != rect || b.Buffer != buf || !b.Velocity.IsZero() {
		t.Errorf("resting ball changed: rect=%+v buffer=%+v velocity=%+v", b.Rect, b.Buffer, b.Velocity)
	}
	if len(w.Events()) != 0 {
		t.Errorf("resting ball produced events: %+v", w.Events())
	}
}

func TestInputAppliedToEveryBall(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 100, 100, Vec2{}, 0)
	b := addBall(t, w, 10, 400, 400, Vec2{}, 0)

	w.Step(Right | Down)

	want := NewVec2(DefaultAcceleration, DefaultAcceleration)
	if a.Velocity != want || b.Velocity != want {
		t.Errorf("velocities a=%+v b=%+v, want %+v", a.Velocity, b.Velocity, want)
	}
	if w.Tick() != 1 {
		t.Errorf("tick=%d, want 1", w.Tick())
	}
}

func TestBoundaryBounceEnergy(t *testing.T) {
	for _, d := range []float64{0, 0.1, 0.3} {
		w := newTestWorld(t, DefaultConfig())
		b := addBall(t, w, 10, 778, 300, NewVec2(3, 0), d)
		eBefore := b.KineticEnergy()

		w.Step(NoInput)

		if !almostEqual(b.Velocity.X, -3*(1-d)) {
			t.Errorf("dissipation %v: vx=%v, want %v", d, b.Velocity.X, -3*(1-d))
		}
		eAfter := b.KineticEnergy()
		if d == 0 && !almostEqual(eAfter, eBefore) {
			t.Errorf("elastic bounce changed energy: before=%v after=%v", eBefore, eAfter)
		}
		if d > 0 && eAfter >= eBefore {
			t.Errorf("dissipation %v: energy did not drop: before=%v after=%v", d, eBefore, eAfter)
		}
		if b.Rect.Right > 800 {
			t.Errorf("dissipation %v: ball escaped arena: %+v", d, b.Rect)
		}
	}
}

func TestWallLeftSideHitReflectsXOnly(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 100, 200, 300, 300)
	b := addBall(t, w, 10, 180, 150, NewVec2(3, 0.5), 0.1)

	w.Step(NoInput)

	if !almostEqual(b.Velocity.X, -2.7) {
		t.Errorf("vx=%v, want -2.7", b.Velocity.X)
	}
	if b.Velocity.Y != 0.5 {
		t.Errorf("vy=%v, want 0.5 untouched", b.Velocity.Y)
	}
	// Contact at x=200, ball right edge at 203 before correction.
	if b.Rect.Right != 198 {
		t.Errorf("ball right edge=%d, want 198 (2px clear of the wall)", b.Rect.Right)
	}
	if len(w.Events()) != 1 || w.Events()[0].Type != EventWall {
		t.Errorf("events=%+v, want a single wall event", w.Events())
	}
}

func TestWallTopSideHitReflectsYOnly(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 200, 100, 300, 300)
	b := addBall(t, w, 10, 150, 180, NewVec2(0, 3), 0.1)

	w.Step(NoInput)

	if !almostEqual(b.Velocity.Y, -2.7) || b.Velocity.X != 0 {
		t.Errorf("velocity=%+v, want (0, -2.7)", b.Velocity)
	}
	if b.Rect.Bottom != 198 {
		t.Errorf("ball bottom edge=%d, want 198", b.Rect.Bottom)
	}
}

func TestWallRightSideHitReflectsXOnly(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 100, 200, 300, 300)
	b := addBall(t, w, 10, 302, 150, NewVec2(-3, 0.5), 0.1)

	w.Step(NoInput)

	if !almostEqual(b.Velocity.X, 2.7) || b.Velocity.Y != 0.5 {
		t.Errorf("velocity=%+v, want (2.7, 0.5)", b.Velocity)
	}
	// Contact at x=299, the wall's last column; pixels 300 and 301 stay empty.
	want := Rect{Left: 302, Top: 150, Right: 322, Bottom: 170}
	if b.Rect != want {
		t.Errorf("rect=%+v, want %+v", b.Rect, want)
	}
	if len(w.Events()) != 1 || w.Events()[0].Type != EventWall {
		t.Errorf("events=%+v, want a single wall event", w.Events())
	}
}

func TestWallBottomSideHitReflectsYOnly(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 100, 200, 300, 300)
	b := addBall(t, w, 10, 240, 302, NewVec2(0.5, -3), 0.1)

	w.Step(NoInput)

	if !almostEqual(b.Velocity.Y, 2.7) || b.Velocity.X != 0.5 {
		t.Errorf("velocity=%+v, want (0.5, 2.7)", b.Velocity)
	}
	want := Rect{Left: 240, Top: 302, Right: 260, Bottom: 322}
	if b.Rect != want {
		t.Errorf("rect=%+v, want %+v", b.Rect, want)
	}
}

func TestWallClearanceIsSymmetric(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	wall := addWall(t, w, 100, 200, 300, 300)
	left := addBall(t, w, 10, 180, 150, NewVec2(3, 0), 0)
	right := addBall(t, w, 10, 302, 150, NewVec2(-3, 0), 0)

	w.Step(NoInput)

	gapLeft := wall.Rect.Left - left.Rect.Right
	gapRight := right.Rect.Left - wall.Rect.Right
	if gapLeft != WallClearance || gapRight != WallClearance {
		t.Errorf("gaps left=%d right=%d, want %d", gapLeft, gapRight, WallClearance)
	}
}

func TestCoincidentBallsSeparate(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	a := addBall(t, w, 10, 300, 300, Vec2{}, 0)
	b := addBall(t, w, 10, 300, 300, Vec2{}, 0)

	w.Step(NoInput)

	if a.Rect.Left != 289 || b.Rect.Left != 311 || a.Rect.Top != 300 || b.Rect.Top != 300 {
		t.Errorf("after one tick a=%+v b=%+v, want lower handle left and higher handle right", a.Rect, b.Rect)
	}
	for i := 0; i < 100; i++ {
		w.Step(NoInput)
	}
	if d := distance(a.Center(), b.Center()); d < 20 {
		t.Errorf("after 100 ticks distance=%v, want >= 20", d)
	}
}

func TestWallBoundingBoxWithoutContactIsIgnored(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 100, 200, 300, 300)
	// Only the ball's empty bounding-box corner reaches into the wall.
	b := addBall(t, w, 10, 183, 83, Vec2{}, 0.1)

	w.Step(NoInput)

	if b.Rect.Left != 183 || b.Rect.Top != 83 || !b.Velocity.IsZero() {
		t.Errorf("ball changed without real contact: rect=%+v velocity=%+v", b.Rect, b.Velocity)
	}
	if len(w.Events()) != 0 {
		t.Errorf("unexpected events: %+v", w.Events())
	}
}

func TestContainmentOverManyTicks(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	addWall(t, w, 200, 200, 300, 300)
	if err := Populate(w, 50, 10, 0.1, rand.New(rand.NewSource(42))); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	inputs := []Input{Right, Right | Down, Down, Left, Up | Left, NoInput, Up}
	arena := w.Arena()

	for tick := 0; tick < 600; tick++ {
		w.Step(inputs[(tick/40)%len(inputs)])
		for _, b := range w.Balls() {
			if !arena.ContainsRect(b.Rect) {
				t.Fatalf("tick %d: ball %d escaped: %+v", tick, b.ID, b.Rect)
			}
			if math.IsNaN(b.Velocity.X) || math.IsNaN(b.Velocity.Y) {
				t.Fatalf("tick %d: ball %d has NaN velocity", tick, b.ID)
			}
			if math.Abs(b.Buffer.X) >= 1 || math.Abs(b.Buffer.Y) >= 1 {
				t.Fatalf("tick %d: ball %d buffer %+v", tick, b.ID, b.Buffer)
			}
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() []Ball {
		w := newTestWorld(t, DefaultConfig())
		addWall(t, w, 200, 200, 300, 300)
		if err := Populate(w, 30, 10, 0.1, rand.New(rand.NewSource(9))); err != nil {
			t.Fatalf("Populate: %v", err)
		}
		for i := 0; i < 200; i++ {
			w.Step(Input(i % 16))
		}
		out := make([]Ball, len(w.Balls()))
		for i, b := range w.Balls() {
			out[i] = *b
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("non-deterministic: ball %d run1=%+v run2=%+v", i, first[i], second[i])
		}
	}
}

func TestMoveWall(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	static := addWall(t, w, 10, 10, 20, 20)
	moving, err := NewMovingWall(0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddWall(moving); err != nil {
		t.Fatal(err)
	}

	if err := w.MoveWall(static.ID, Rect{Left: 0, Top: 0, Right: 5, Bottom: 5}); !errors.Is(err, ErrStaticWall) {
		t.Errorf("moving a static wall: err=%v, want ErrStaticWall", err)
	}
	if err := w.MoveWall(moving.ID, Rect{Left: 750, Top: 550, Right: 900, Bottom: 700}); err != nil {
		t.Fatalf("MoveWall: %v", err)
	}
	if want := (Rect{Left: 750, Top: 550, Right: 800, Bottom: 600}); moving.Rect != want {
		t.Errorf("moved wall=%+v, want clipped %+v", moving.Rect, want)
	}
	if err := w.MoveWall(moving.ID, Rect{Left: 900, Top: 900, Right: 950, Bottom: 950}); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("off-arena rect: err=%v, want ErrInvalidRect", err)
	}
	if err := w.MoveWall(7, Rect{Right: 1, Bottom: 1}); !errors.Is(err, ErrUnknownWall) {
		t.Errorf("unknown wall: err=%v, want ErrUnknownWall", err)
	}
}
