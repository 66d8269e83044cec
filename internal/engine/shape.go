package engine

import "sort"

// Shape is anything that takes part in collision checks: a bounding box for
// the broad phase and a pixel silhouette for the narrow phase.
type Shape interface {
	Bounds() Rect
	Covers(x, y int) bool
}

// Body is a Shape that moves.
type Body interface {
	Shape
	Mass() float64
	Vel() Vec2
	Integrate()
}

// ContactPoint returns the first pixel covered by both silhouettes,
// scanning the overlap of their bounding boxes row by row, left to right.
func ContactPoint(a, b Shape) (Point, bool) {
	overlap := a.Bounds().Intersect(b.Bounds())
	if overlap.Empty() {
		return Point{}, false
	}
	for y := overlap.Top; y < overlap.Bottom; y++ {
		for x := overlap.Left; x < overlap.Right; x++ {
			if a.Covers(x, y) && b.Covers(x, y) {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// Side names an edge of a wall.
type Side int

const (
	SideLeft Side = iota
	SideTop
	SideRight
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Hit describes where a contact point sits relative to a wall.
type Hit struct {
	Side   Side  // nearest edge
	Next   Side  // second nearest edge
	Corner Point // corner notionally formed by Side and Next
}

// SideOf classifies a contact point against a wall rectangle. The four edge
// distances are sorted ascending with ties kept in left, top, right, bottom
// order, so the result is deterministic.
func SideOf(contact Point, wall Rect) Hit {
	dist := []struct {
		side Side
		d    int
	}{
		{SideLeft, abs(wall.Left - contact.X)},
		{SideTop, abs(wall.Top - contact.Y)},
		{SideRight, abs(wall.Right - contact.X)},
		{SideBottom, abs(wall.Bottom - contact.Y)},
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].d < dist[j].d })

	hit := Hit{Side: dist[0].side, Next: dist[1].side}
	hit.Corner.X = wall.Right
	if hit.Side == SideLeft || hit.Next == SideLeft {
		hit.Corner.X = wall.Left
	}
	hit.Corner.Y = wall.Bottom
	if hit.Side == SideTop || hit.Next == SideTop {
		hit.Corner.Y = wall.Top
	}
	return hit
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var (
	_ Body  = (*Ball)(nil)
	_ Shape = (*Wall)(nil)
)
