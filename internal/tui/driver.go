package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/arena/internal/engine"
)

// InputSetter receives the held directions once per poll.
type InputSetter interface {
	SetInput(in engine.Input)
}

// Driver feeds terminal keys into the simulation and repaints on resize.
type Driver struct {
	screen   tcell.Screen
	renderer *Renderer
	keys     *Keys
	input    InputSetter
	poll     time.Duration
}

// NewDriver polls held keys every poll interval, normally one tick.
func NewDriver(screen tcell.Screen, renderer *Renderer, input InputSetter, poll time.Duration) *Driver {
	return &Driver{
		screen:   screen,
		renderer: renderer,
		keys:     NewKeys(150 * time.Millisecond),
		input:    input,
		poll:     poll,
	}
}

// Run handles terminal events until a quit key is pressed or ctx ends. It
// calls quit before returning because of a key.
func (d *Driver) Run(ctx context.Context, quit context.CancelFunc) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	var last engine.Input
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				quit()
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuit(ev) {
					d.input.SetInput(engine.NoInput)
					quit()
					return
				}
				if dir, ok := DirectionOf(ev); ok {
					d.keys.Press(dir, time.Now())
				} else if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					d.keys.Release()
				}
			case *tcell.EventResize:
				d.screen.Sync()
				d.renderer.Redraw()
			}

		case now := <-ticker.C:
			if in := d.keys.Held(now); in != last {
				last = in
				d.input.SetInput(in)
				d.renderer.SetStatus("input " + in.String())
			}
		}
	}
}
