// Package tui draws the arena in a terminal and turns arrow keys into held
// directions.
package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/playmatatu/arena/internal/snapshot"
)

var ballColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorPurple,
	tcell.ColorTeal,
	tcell.ColorRed,
	tcell.ColorOrange,
	tcell.ColorWhite,
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	movingStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Renderer scales arena pixels onto the terminal grid. The bottom row is a
// status line.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	last   *snapshot.Snapshot
	status string
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Publish implements sim.Publisher.
func (r *Renderer) Publish(ctx context.Context, s *snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = s
	r.draw()
	return nil
}

// SetStatus replaces the text after the tick counter.
func (r *Renderer) SetStatus(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

// Redraw repaints the last snapshot, e.g. after a resize.
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draw()
}

func (r *Renderer) draw() {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	rows-- // status line
	if r.last == nil || cols <= 0 || rows <= 0 {
		r.screen.Show()
		return
	}
	s := r.last

	for _, w := range s.Walls {
		style := wallStyle
		if w.Movable {
			style = movingStyle
		}
		x0, y0, ok0 := CellOf(w.Left, w.Top, s.Width, s.Height, cols, rows)
		x1, y1, ok1 := CellOf(w.Right-1, w.Bottom-1, s.Width, s.Height, cols, rows)
		if !ok0 || !ok1 {
			continue
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	for _, b := range s.Balls {
		x, y, ok := CellOf(b.X+b.Radius, b.Y+b.Radius, s.Width, s.Height, cols, rows)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(ballColors[b.ID%len(ballColors)])
		r.screen.SetContent(x, y, '●', nil, style)
	}

	line := fmt.Sprintf(" tick %d  balls %d  %s", s.Tick, len(s.Balls), r.status)
	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		r.screen.SetContent(x, rows, ch, nil, statusStyle)
	}
	r.screen.Show()
}

// CellOf maps an arena pixel to a terminal cell. Pixels outside the arena
// have no cell.
func CellOf(x, y, width, height, cols, rows int) (int, int, bool) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	return x * cols / width, y * rows / height, true
}
