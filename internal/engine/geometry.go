package engine

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec converts the point to a Vec2.
func (p Point) Vec() Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// Rect is an axis-aligned pixel rectangle. Right and Bottom are exclusive,
// so Width = Right - Left.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// NewRect builds a rectangle from its edges.
func NewRect(top, left, bottom, right int) (Rect, error) {
	r := Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	if r.Empty() {
		return Rect{}, ErrInvalidRect
	}
	return r, nil
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Center uses floor division, so a 20px box starting at 0 is centered at 10.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}
}

// Overlaps is the broad-phase test. Rectangles that only share an edge do
// not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && r.Right > o.Left && r.Top < o.Bottom && r.Bottom > o.Top
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Intersect returns the overlapping region, empty when there is none.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// ClampInto shifts r so it lies inside bounds, edge by edge.
func (r Rect) ClampInto(bounds Rect) Rect {
	if r.Left < bounds.Left {
		r = r.Translate(bounds.Left-r.Left, 0)
	}
	if r.Right > bounds.Right {
		r = r.Translate(bounds.Right-r.Right, 0)
	}
	if r.Top < bounds.Top {
		r = r.Translate(0, bounds.Top-r.Top)
	}
	if r.Bottom > bounds.Bottom {
		r = r.Translate(0, bounds.Bottom-r.Bottom)
	}
	return r
}

// distance returns the Euclidean distance between two pixel points.
func distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
