// Package sound plays short tones for collisions in the terminal driver.
package sound

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/playmatatu/arena/internal/engine"
	"github.com/playmatatu/arena/internal/snapshot"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneDuration = 60 * time.Millisecond
	baseVolume   = 0.25
)

// Player mixes bounce tones. A Player that was never initialized stays
// silent, so callers can use it unconditionally.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences everything still playing.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Publish implements sim.Publisher: at most one tone per event kind per
// snapshot, pitched by the fastest ball involved.
func (p *Player) Publish(ctx context.Context, s *snapshot.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	for kind, speed := range loudest(s.Events) {
		tone, err := Tone(kind, speed)
		if err != nil {
			return err
		}
		speaker.Lock()
		p.mixer.Add(tone)
		speaker.Unlock()
	}
	return nil
}

// loudest keeps the highest speed per event kind.
func loudest(events []snapshot.Event) map[string]float64 {
	out := make(map[string]float64)
	for _, e := range events {
		if cur, ok := out[e.Type]; !ok || e.Speed > cur {
			out[e.Type] = e.Speed
		}
	}
	return out
}

// Frequency maps an event to a pitch: walls ring low, balls click high,
// and faster impacts sound higher.
func Frequency(kind string, speed float64) float64 {
	base := 440.0
	switch kind {
	case engine.EventWall:
		base = 220
	case engine.EventBoundary:
		base = 330
	}
	return base * (1 + math.Min(speed, 20)/20)
}

// Tone returns a short decaying sine for one event kind.
func Tone(kind string, speed float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Frequency(kind, speed))
	if err != nil {
		return nil, err
	}
	decayed := &decay{streamer: sine, total: sampleRate.N(toneDuration)}
	return &effects.Volume{Streamer: decayed, Base: 2, Volume: math.Log2(baseVolume)}, nil
}

// decay fades a stream linearly to silence over total samples, then ends it.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.pos >= d.total {
		return 0, false
	}
	if rest := d.total - d.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.pos)/float64(d.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
