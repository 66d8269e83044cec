package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/arena/internal/api/handlers"
	"github.com/playmatatu/arena/internal/config"
	"github.com/playmatatu/arena/internal/middleware"
	"github.com/playmatatu/arena/internal/ws"
)

// Services are the parts of the process the routes expose. Any of them may
// be nil; the matching endpoints then answer 503.
type Services struct {
	World   handlers.WorldSource
	Control handlers.Controller
	Runs    handlers.RunStore
	Hub     *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc Services, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	var clients handlers.ClientCounter
	if svc.Hub != nil {
		clients = svc.Hub
		router.GET("/ws", middleware.WebSocketCORSCheck(cfg), svc.Hub.ServeWS)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(svc.World, clients))
		v1.GET("/world", handlers.GetWorld(svc.World))

		v1.POST("/auth/token", handlers.IssueOperatorToken(cfg))

		runs := v1.Group("/runs")
		{
			runs.GET("", handlers.ListRuns(svc.Runs))
			runs.GET("/:id/snapshot", handlers.GetRunSnapshot(svc.Runs))
			runs.GET("/:id/events", handlers.GetRunEvents(svc.Runs))
		}

		control := v1.Group("/control", middleware.OperatorAuth(cfg))
		{
			control.GET("/input", handlers.GetInput(svc.Control))
			control.POST("/input", handlers.SetInput(svc.Control))
			control.PUT("/walls/:id", handlers.MoveWall(svc.Control))
		}
	}
}
