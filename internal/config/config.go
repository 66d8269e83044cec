package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/playmatatu/arena/internal/engine"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool
	MigrationsDir  string

	// Redis
	RedisURL         string
	SnapshotChannel  string
	DetectionChannel string

	// Server
	Port        string
	FrontendURL string
	ServeOnly   bool // relay snapshots from Redis instead of simulating

	// Simulation
	FPS                 int
	NBalls              int
	BallRadius          int
	Dissipation         float64
	ScreenWidth         int
	ScreenHeight        int
	BallCollisionPolicy string
	Walls               string
	MovingWalls         int
	Seed                int64
	BroadcastEvery      int
	PersistEvery        int

	// Terminal driver
	SoundEnabled bool

	// Security
	JWTSecret       string
	OperatorKeyHash string
	TokenTTLMinutes int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database (empty disables persistence)
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),

		// Redis (empty disables pub/sub)
		RedisURL:         getEnv("REDIS_URL", ""),
		SnapshotChannel:  getEnv("SNAPSHOT_CHANNEL", "arena_snapshots"),
		DetectionChannel: getEnv("DETECTION_CHANNEL", "detections"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		ServeOnly:   getEnvBool("SERVE_ONLY", false),

		// Simulation
		FPS:                 getEnvInt("FPS", 60),
		NBalls:              getEnvInt("N_BALLS", 50),
		BallRadius:          getEnvInt("BALL_RADIUS", engine.DefaultBallRadius),
		Dissipation:         getEnvFloat("DISSIPATION", engine.DefaultDissipation),
		ScreenWidth:         getEnvInt("SCREEN_WIDTH", engine.DefaultWidth),
		ScreenHeight:        getEnvInt("SCREEN_HEIGHT", engine.DefaultHeight),
		BallCollisionPolicy: getEnv("BALL_COLLISION_POLICY", "elastic"),
		Walls:               getEnv("WALLS", "200,200,300,300"),
		MovingWalls:         getEnvInt("MOVING_WALLS", 0),
		Seed:                int64(getEnvInt("SEED", 1)),
		BroadcastEvery:      getEnvInt("BROADCAST_EVERY", 2),
		PersistEvery:        getEnvInt("PERSIST_EVERY", 60),

		// Terminal driver
		SoundEnabled: getEnvBool("SOUND_ENABLED", false),

		// Security
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		OperatorKeyHash: getEnv("OPERATOR_KEY_HASH", ""),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
	}
}

// EngineConfig projects the settings the collision engine consumes.
func (c *Config) EngineConfig() (engine.Config, error) {
	policy, err := engine.ParsePolicy(c.BallCollisionPolicy)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Width:        c.ScreenWidth,
		Height:       c.ScreenHeight,
		Acceleration: engine.DefaultAcceleration,
		Policy:       policy,
	}, nil
}

// WallRects parses WALLS as "top,left,bottom,right;top,left,bottom,right".
func (c *Config) WallRects() ([]engine.Rect, error) {
	return ParseWalls(c.Walls)
}

// ParseWalls parses a semicolon-separated list of wall rectangles.
func ParseWalls(s string) ([]engine.Rect, error) {
	var rects []engine.Rect
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("wall %q: want top,left,bottom,right", part)
		}
		var edges [4]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("wall %q: %w", part, err)
			}
			edges[i] = n
		}
		r, err := engine.NewRect(edges[0], edges[1], edges[2], edges[3])
		if err != nil {
			return nil, fmt.Errorf("wall %q: %w", part, err)
		}
		rects = append(rects, r)
	}
	return rects, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
