package engine

import "fmt"

// ElasticCollision1D resolves a collision of two point masses along one axis.
func ElasticCollision1D(u1, u2, m1, m2 float64) (v1, v2 float64) {
	mtot := m1 + m2
	v1 = u1*(m1-m2)/mtot + u2*2*m2/mtot
	v2 = u1*2*m1/mtot + u2*(m2-m1)/mtot
	return v1, v2
}

// ElasticCollision2D resolves a collision of two finite bodies. The impulse
// acts along the line of centers c1-c2; tangential components are kept.
func ElasticCollision2D(u1, u2 Vec2, m1, m2 float64, c1, c2 Vec2) (Vec2, Vec2) {
	return InelasticCollision2D(u1, u2, m1, m2, c1, c2, 1)
}

// InelasticCollision2D is ElasticCollision2D with a coefficient of
// restitution e applied to the normal component of the relative velocity.
// e = 1 is perfectly elastic, e = 0 leaves both bodies moving together
// along the line of centers. Momentum is conserved for every e.
func InelasticCollision2D(u1, u2 Vec2, m1, m2 float64, c1, c2 Vec2, e float64) (Vec2, Vec2) {
	mtot := m1 + m2
	d := c1.Minus(c2).MagnitudeSquared()
	if d < MinDistance {
		d = MinDistance
	}
	k := 1 + e

	n12 := c1.Minus(c2)
	v1 := u1.Minus(n12.Times(k * m2 / mtot * u1.Minus(u2).Dot(n12) / d))

	n21 := c2.Minus(c1)
	v2 := u2.Minus(n21.Times(k * m1 / mtot * u2.Minus(u1).Dot(n21) / d))

	return v1, v2
}

// BallCollisionPolicy selects whether ball-ball collisions lose energy.
type BallCollisionPolicy int

const (
	// PolicyElastic resolves ball-ball collisions without energy loss.
	PolicyElastic BallCollisionPolicy = iota
	// PolicyDissipative uses restitution 1-dissipation of the ball being
	// updated, the same factor applied to wall and boundary bounces.
	PolicyDissipative
)

func (p BallCollisionPolicy) String() string {
	switch p {
	case PolicyElastic:
		return "elastic"
	case PolicyDissipative:
		return "dissipative"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy parses "elastic" or "dissipative".
func ParsePolicy(s string) (BallCollisionPolicy, error) {
	switch s {
	case "elastic", "":
		return PolicyElastic, nil
	case "dissipative":
		return PolicyDissipative, nil
	}
	return PolicyElastic, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
