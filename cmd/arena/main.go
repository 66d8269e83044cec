package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/playmatatu/arena/internal/config"
	"github.com/playmatatu/arena/internal/sim"
	"github.com/playmatatu/arena/internal/sound"
	"github.com/playmatatu/arena/internal/tui"
)

func main() {
	cfg := config.Load()

	world, err := sim.BuildWorld(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build world: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// The screen owns stdout; keep log lines out of it.
	log.SetOutput(logSink())

	opts := sim.OptionsFrom(cfg, 0)
	opts.BroadcastEvery = 1
	opts.PersistEvery = 0
	runner := sim.NewRunner(world, opts)

	renderer := tui.NewRenderer(screen)
	runner.AddPublisher(renderer)

	if cfg.SoundEnabled {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			log.Printf("[SOUND] audio unavailable: %v", err)
		} else {
			defer player.Cleanup()
			runner.AddPublisher(player)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	driver := tui.NewDriver(screen, renderer, runner, time.Second/time.Duration(max(cfg.FPS, 1)))
	go driver.Run(ctx, cancel)

	if err := runner.Run(ctx); err != nil {
		log.Printf("[SIM] runner: %v", err)
	}
}

// logSink sends logs to ARENA_LOG if set, otherwise discards them.
func logSink() *os.File {
	if path := os.Getenv("ARENA_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			return f
		}
	}
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return f
}
