package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func mustBall(t *testing.T, radius, x, y int, dissipation float64) *Ball {
	t.Helper()
	b, err := NewBall(radius, Point{X: x, Y: y}, dissipation)
	if err != nil {
		t.Fatalf("NewBall(%d, (%d,%d), %v): %v", radius, x, y, dissipation, err)
	}
	return b
}

func TestNewBallRejectsInvalidInput(t *testing.T) {
	if _, err := NewBall(0, Point{}, 0); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("radius 0: err=%v, want ErrInvalidRadius", err)
	}
	if _, err := NewBall(-3, Point{}, 0); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("radius -3: err=%v, want ErrInvalidRadius", err)
	}
	for _, d := range []float64{-0.1, 1, 1.5, math.NaN()} {
		if _, err := NewBall(5, Point{}, d); !errors.Is(err, ErrInvalidDissipation) {
			t.Errorf("dissipation %v: err=%v, want ErrInvalidDissipation", d, err)
		}
	}
}

func TestBallMassIsArea(t *testing.T) {
	b := mustBall(t, 10, 0, 0, 0)
	want := math.Pi * 100
	if b.Mass() != want || b.Area() != want {
		t.Errorf("mass=%v area=%v, want %v", b.Mass(), b.Area(), want)
	}
	if b.Rect.Width() != 20 || b.Rect.Height() != 20 {
		t.Errorf("bounding box %+v, want 20x20", b.Rect)
	}
	if c := b.Center(); c != (Point{X: 10, Y: 10}) {
		t.Errorf("center=%+v, want (10,10)", c)
	}
}

func TestBallCoversCircularFootprint(t *testing.T) {
	b := mustBall(t, 10, 100, 100, 0)
	if !b.Covers(110, 110) {
		t.Error("center pixel should be covered")
	}
	for _, p := range []Point{{100, 100}, {119, 100}, {100, 119}, {119, 119}} {
		if b.Covers(p.X, p.Y) {
			t.Errorf("corner pixel %+v should not be covered", p)
		}
	}
	if b.Covers(99, 110) || b.Covers(120, 110) {
		t.Error("pixels outside the bounding box should not be covered")
	}
	if !b.Covers(100, 110) || !b.Covers(119, 109) {
		t.Error("edge midpoints should be covered")
	}
}

func TestAccelerateComposesDirections(t *testing.T) {
	b := mustBall(t, 5, 0, 0, 0)
	b.Accelerate(Up|Right, DefaultAcceleration)
	if b.Velocity != NewVec2(DefaultAcceleration, -DefaultAcceleration) {
		t.Errorf("up+right velocity=%+v", b.Velocity)
	}
	b.Accelerate(Left|Right, DefaultAcceleration)
	if b.Velocity != NewVec2(DefaultAcceleration, -DefaultAcceleration) {
		t.Errorf("opposite directions should cancel: velocity=%+v", b.Velocity)
	}
	b.Accelerate(Down, DefaultAcceleration)
	if b.Velocity.Y != 0 {
		t.Errorf("down should undo up: velocity=%+v", b.Velocity)
	}
}

func TestSubPixelIntegrationFidelity(t *testing.T) {
	// N values keep 0.4*N away from integer boundaries so float error in
	// the buffer cannot flip the floor.
	for _, n := range []int{1, 3, 7, 12, 29, 63, 101} {
		b := mustBall(t, 5, 10, 10, 0)
		b.Velocity = NewVec2(0.4, 0)
		for i := 0; i < n; i++ {
			b.Integrate()
		}
		want := int(math.Floor(0.4 * float64(n)))
		if got := b.Rect.Left - 10; got != want {
			t.Errorf("after %d ticks moved %d px, want %d", n, got, want)
		}
		if b.Rect.Top != 10 {
			t.Errorf("after %d ticks y moved to %d", n, b.Rect.Top)
		}
	}
}

func TestBufferStaysBelowOnePixel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := mustBall(t, 5, 0, 0, 0)
	for i := 0; i < 1000; i++ {
		b.Velocity = NewVec2(rng.Float64()*8-4, rng.Float64()*8-4)
		b.Integrate()
		if math.Abs(b.Buffer.X) >= 1 || math.Abs(b.Buffer.Y) >= 1 {
			t.Fatalf("tick %d: buffer %+v escaped (-1, 1)", i, b.Buffer)
		}
	}
}

func TestIntegrateNegativeVelocityTruncatesTowardZero(t *testing.T) {
	b := mustBall(t, 5, 50, 50, 0)
	b.Velocity = NewVec2(-0.75, -1.5)
	b.Integrate()
	if b.Rect.Left != 50 || b.Rect.Top != 49 {
		t.Errorf("first tick moved to (%d,%d), want (50,49)", b.Rect.Left, b.Rect.Top)
	}
	b.Integrate()
	if b.Rect.Left != 49 || b.Rect.Top != 47 {
		t.Errorf("second tick moved to (%d,%d), want (49,47)", b.Rect.Left, b.Rect.Top)
	}
}

func TestBounceBoundsUsesProjectedPosition(t *testing.T) {
	arena := Rect{Right: 100, Bottom: 100}
	b := mustBall(t, 5, 88, 40, 0.25)
	b.Velocity = NewVec2(3, 0)

	// Right edge at 98; 98+3 would leave the arena.
	x, y := b.BounceBounds(arena)
	if !x || y {
		t.Fatalf("BounceBounds = (%v, %v), want (true, false)", x, y)
	}
	if !almostEqual(b.Velocity.X, -2.25) {
		t.Errorf("vx=%v, want -2.25", b.Velocity.X)
	}
}

func TestRandomPositionRespectsMargin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	arena := Rect{Right: 800, Bottom: 600}
	for i := 0; i < 500; i++ {
		p, err := RandomPosition(rng, arena, 20)
		if err != nil {
			t.Fatal(err)
		}
		if p.X < 20 || p.X >= 780 || p.Y < 20 || p.Y >= 580 {
			t.Fatalf("position %+v outside margin", p)
		}
	}
	if _, err := RandomPosition(rng, Rect{Right: 30, Bottom: 30}, 20); !errors.Is(err, ErrBallTooLarge) {
		t.Errorf("err=%v, want ErrBallTooLarge", err)
	}
}
