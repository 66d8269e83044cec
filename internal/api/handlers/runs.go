package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/arena/internal/store"
)

// ListRuns returns stored runs, newest first.
func ListRuns(runs RunStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runs == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
			return
		}
		limit := queryInt(c, "limit", 20, 1, 100)
		offset := queryInt(c, "offset", 0, 0, 1<<30)

		list, err := runs.ListRuns(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[STORE] list runs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
			return
		}
		if list == nil {
			list = []store.Run{}
		}
		c.JSON(http.StatusOK, gin.H{"runs": list, "limit": limit, "offset": offset})
	}
}

// GetRunSnapshot returns the newest stored snapshot of a run.
func GetRunSnapshot(runs RunStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runs == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}
		s, err := runs.LatestSnapshot(c.Request.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot for run"})
			return
		}
		if err != nil {
			log.Printf("[STORE] snapshot for run %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// GetRunEvents returns stored collision events of a run in tick order.
func GetRunEvents(runs RunStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runs == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}
		limit := queryInt(c, "limit", 500, 1, 5000)
		events, err := runs.Events(c.Request.Context(), id, limit)
		if err != nil {
			log.Printf("[STORE] events for run %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
			return
		}
		if events == nil {
			events = []store.EventRow{}
		}
		c.JSON(http.StatusOK, gin.H{"run_id": id, "events": events})
	}
}
