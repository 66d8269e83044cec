package engine

// Wall is a static rectangular obstacle. Movable walls can be refitted
// between ticks but never move on their own.
type Wall struct {
	ID      int  `json:"id"`
	Rect    Rect `json:"rect"`
	Movable bool `json:"movable"`
}

// NewWall creates a static wall from its edges.
func NewWall(top, left, bottom, right int) (*Wall, error) {
	r, err := NewRect(top, left, bottom, right)
	if err != nil {
		return nil, err
	}
	return &Wall{Rect: r}, nil
}

// NewMovingWall creates a wall that accepts Fit.
func NewMovingWall(top, left, bottom, right int) (*Wall, error) {
	w, err := NewWall(top, left, bottom, right)
	if err != nil {
		return nil, err
	}
	w.Movable = true
	return w, nil
}

func (w *Wall) Bounds() Rect { return w.Rect }

// Covers treats the whole rectangle as solid.
func (w *Wall) Covers(x, y int) bool { return w.Rect.Contains(x, y) }

// Fit replaces the wall's rectangle.
func (w *Wall) Fit(r Rect) error {
	if !w.Movable {
		return ErrStaticWall
	}
	if r.Empty() {
		return ErrInvalidRect
	}
	w.Rect = r
	return nil
}
