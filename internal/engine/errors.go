package engine

import "errors"

var (
	ErrInvalidRadius      = errors.New("engine: radius must be positive")
	ErrInvalidRect        = errors.New("engine: rectangle must have positive width and height")
	ErrInvalidDissipation = errors.New("engine: dissipation must be in [0, 1)")
	ErrInvalidArena       = errors.New("engine: arena must have positive width and height")
	ErrBallTooLarge       = errors.New("engine: ball does not fit in the arena")
	ErrUnknownBall        = errors.New("engine: unknown ball")
	ErrUnknownWall        = errors.New("engine: unknown wall")
	ErrStaticWall         = errors.New("engine: wall is static")
	ErrUnknownPolicy      = errors.New("engine: unknown ball collision policy")
)
