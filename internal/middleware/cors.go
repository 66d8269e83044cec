package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/arena/internal/config"
)

const publicScreenOrigin = "https://arena.playmatatu.com"

// CORSMiddleware lets the viewer read the public API and operators drive the
// control endpoints. Only the methods the router mounts are advertised.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, allowed origins: %v", cfg.Environment, allowedOrigins(cfg))

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return originAllowed(cfg, origin) },
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"X-Arena-Tick"},
		// Operator tokens travel in the Authorization header.
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// WebSocketCORSCheck rejects /ws upgrades from origins the API would refuse.
func WebSocketCORSCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isUpgrade(c.Request) {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "WebSocket origin required"})
		case !originAllowed(cfg, origin):
			log.Printf("[CORS] Rejected WebSocket origin %q", origin)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "WebSocket origin not allowed"})
		default:
			c.Next()
		}
	}
}

// allowedOrigins lists accepted origins. Development entries are port
// wildcards matched by prefix in originAllowed.
func allowedOrigins(cfg *config.Config) []string {
	if cfg.Environment == "development" {
		return []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	origins := []string{publicScreenOrigin}
	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	return origins
}

func originAllowed(cfg *config.Config, origin string) bool {
	if cfg.Environment == "development" {
		// Any local dev server port.
		return strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")
	}
	for _, o := range allowedOrigins(cfg) {
		if origin == o {
			return true
		}
	}
	return false
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Connection"), "upgrade") &&
		strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
