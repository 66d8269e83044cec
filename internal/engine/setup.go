package engine

import "math/rand"

// Populate adds n balls of the given radius at random positions, keeping a
// margin of one diameter from every arena edge. Balls may start overlapping;
// the first ticks push them apart.
func Populate(w *World, n, radius int, dissipation float64, rng *rand.Rand) error {
	for i := 0; i < n; i++ {
		pos, err := RandomPosition(rng, w.arena, 2*radius)
		if err != nil {
			return err
		}
		b, err := NewBall(radius, pos, dissipation)
		if err != nil {
			return err
		}
		if _, err := w.AddBall(b); err != nil {
			return err
		}
	}
	return nil
}
