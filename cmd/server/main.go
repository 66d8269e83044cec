package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/playmatatu/arena/internal/api"
	"github.com/playmatatu/arena/internal/config"
	"github.com/playmatatu/arena/internal/database"
	"github.com/playmatatu/arena/internal/detect"
	"github.com/playmatatu/arena/internal/migrations"
	"github.com/playmatatu/arena/internal/redis"
	"github.com/playmatatu/arena/internal/sim"
	"github.com/playmatatu/arena/internal/store"
	"github.com/playmatatu/arena/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database (optional)
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			log.Println("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
	} else {
		log.Println("[STORE] DATABASE_URL not set; runs will not be persisted")
	}

	// Redis (optional)
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	} else {
		log.Println("[REDIS] REDIS_URL not set; snapshot pub/sub and detections disabled")
	}

	var svc api.Services
	var st *store.Store
	if db != nil {
		st = store.New(db)
		svc.Runs = st
	}

	if cfg.ServeOnly {
		if rdb == nil {
			log.Fatalf("SERVE_ONLY requires REDIS_URL")
		}
		hub := ws.NewHub(nil)
		go hub.Run(ctx)
		ws.StartSnapshotRelay(ctx, rdb, cfg.SnapshotChannel, hub)
		svc.World = hub
		svc.Hub = hub
		serve(ctx, cfg, svc)
		return
	}

	world, err := sim.BuildWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	var runID int64
	if st != nil {
		run, err := st.CreateRun(ctx, store.Run{
			Width:       cfg.ScreenWidth,
			Height:      cfg.ScreenHeight,
			NBalls:      cfg.NBalls,
			BallRadius:  cfg.BallRadius,
			Dissipation: cfg.Dissipation,
			Policy:      world.Config().Policy.String(),
			Seed:        cfg.Seed,
			FPS:         cfg.FPS,
		})
		if err != nil {
			log.Fatalf("Failed to create run: %v", err)
		}
		runID = run.ID
		log.Printf("[STORE] run %d started", runID)
	}

	runner := sim.NewRunner(world, sim.OptionsFrom(cfg, runID))
	hub := ws.NewHub(runner)
	go hub.Run(ctx)
	runner.AddPublisher(hub)

	if st != nil {
		runner.SetRecorder(st)
	}
	if rdb != nil {
		runner.AddPublisher(redis.NewSnapshotPublisher(rdb, cfg.SnapshotChannel))
		detect.Subscribe(ctx, rdb, cfg.DetectionChannel, runner.Detections())
	}

	svc.World = runner
	svc.Control = runner
	svc.Hub = hub

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := runner.Run(ctx); err != nil {
			log.Printf("[SIM] runner: %v", err)
		}
	}()

	serve(ctx, cfg, svc)
	<-done

	if st != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.StopRun(stopCtx, runID, runner.Latest().Tick); err != nil {
			log.Printf("[STORE] %v", err)
		}
	}
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, svc api.Services) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, svc, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Starting arena server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
