package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/arena/internal/engine"
)

// Terminals report key presses and repeats but no releases, so a press
// holds its direction for a short window that key repeat keeps extending.
type Keys struct {
	hold  time.Duration
	until map[engine.Input]time.Time
}

func NewKeys(hold time.Duration) *Keys {
	return &Keys{hold: hold, until: make(map[engine.Input]time.Time)}
}

var opposite = map[engine.Input]engine.Input{
	engine.Up:    engine.Down,
	engine.Down:  engine.Up,
	engine.Left:  engine.Right,
	engine.Right: engine.Left,
}

// Press holds d until now+hold and releases its opposite.
func (k *Keys) Press(d engine.Input, now time.Time) {
	k.until[d] = now.Add(k.hold)
	delete(k.until, opposite[d])
}

// Held returns the directions still held at now.
func (k *Keys) Held(now time.Time) engine.Input {
	var in engine.Input
	for d, until := range k.until {
		if now.Before(until) {
			in |= d
		} else {
			delete(k.until, d)
		}
	}
	return in
}

// Release drops every held direction.
func (k *Keys) Release() {
	for d := range k.until {
		delete(k.until, d)
	}
}

// DirectionOf maps arrow keys, WASD and hjkl to a direction.
func DirectionOf(ev *tcell.EventKey) (engine.Input, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.Up, true
	case tcell.KeyDown:
		return engine.Down, true
	case tcell.KeyLeft:
		return engine.Left, true
	case tcell.KeyRight:
		return engine.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return engine.Up, true
		case 's', 'j':
			return engine.Down, true
		case 'a', 'h':
			return engine.Left, true
		case 'd', 'l':
			return engine.Right, true
		}
	}
	return engine.NoInput, false
}

// IsQuit reports Escape, Ctrl-C and q.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
