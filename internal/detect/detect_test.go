package detect

import (
	"testing"

	"github.com/playmatatu/arena/internal/engine"
)

func TestParseAcceptsBothShapes(t *testing.T) {
	d, err := Parse([]byte(`{"frame": 7, "boxes": [[10, 20, 60, 90]]}`))
	if err != nil {
		t.Fatalf("object payload: %v", err)
	}
	if d.Frame != 7 || len(d.Boxes) != 1 || d.Boxes[0] != [4]int{10, 20, 60, 90} {
		t.Errorf("got %+v", d)
	}

	d, err = Parse([]byte(`[[1, 2, 3, 4], [5, 6, 7, 8]]`))
	if err != nil {
		t.Fatalf("list payload: %v", err)
	}
	if len(d.Boxes) != 2 {
		t.Errorf("got %d boxes, want 2", len(d.Boxes))
	}

	if _, err := Parse([]byte(`"nope"`)); err == nil {
		t.Error("expected an error for a string payload")
	}
}

func TestRectsDropsDegenerateBoxes(t *testing.T) {
	d := Detections{Boxes: [][4]int{{0, 0, 10, 10}, {5, 5, 5, 9}, {9, 9, 2, 2}}}
	rects := d.Rects()
	if len(rects) != 1 || rects[0] != (engine.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}) {
		t.Errorf("rects=%+v", rects)
	}
}

func TestApplyMovesOnlyMovingWalls(t *testing.T) {
	w, err := engine.NewWorld(engine.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	static, _ := engine.NewWall(200, 200, 300, 300)
	m1, _ := engine.NewMovingWall(0, 0, 1, 1)
	m2, _ := engine.NewMovingWall(0, 0, 1, 1)
	for _, wall := range []*engine.Wall{static, m1, m2} {
		if _, err := w.AddWall(wall); err != nil {
			t.Fatal(err)
		}
	}

	d := Detections{Boxes: [][4]int{
		{900, 900, 950, 950}, // outside the arena, skipped
		{100, 50, 180, 140},
	}}
	if moved := Apply(w, d); moved != 1 {
		t.Errorf("moved=%d, want 1", moved)
	}
	if static.Rect != (engine.Rect{Left: 200, Top: 200, Right: 300, Bottom: 300}) {
		t.Errorf("static wall moved to %+v", static.Rect)
	}
	if m1.Rect != (engine.Rect{Left: 100, Top: 50, Right: 180, Bottom: 140}) {
		t.Errorf("first moving wall at %+v", m1.Rect)
	}
	if m2.Rect != (engine.Rect{Left: 0, Top: 0, Right: 1, Bottom: 1}) {
		t.Errorf("second moving wall should keep its place, got %+v", m2.Rect)
	}
}
