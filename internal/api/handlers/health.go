package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(src WorldSource, clients ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"status":  "ok",
			"service": "arena-api",
			"version": version,
			"uptime":  time.Since(startTime).String(),
		}
		if src != nil {
			if s := src.Latest(); s != nil {
				resp["tick"] = s.Tick
			}
		}
		if clients != nil {
			resp["renderers"] = clients.ClientCount()
		}
		c.JSON(http.StatusOK, resp)
	}
}
