package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/arena/internal/engine"
)

// GetWorld returns the snapshot of the last completed tick.
func GetWorld(src WorldSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if src == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulation attached"})
			return
		}
		s := src.Latest()
		if s == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
			return
		}
		c.Header("X-Arena-Tick", strconv.FormatUint(s.Tick, 10))
		c.JSON(http.StatusOK, s)
	}
}

type inputRequest struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// GetInput returns the held directions.
func GetInput(ctl Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulation attached"})
			return
		}
		in := ctl.Input()
		c.JSON(http.StatusOK, gin.H{
			"input": in.String(),
			"up":    in.Has(engine.Up),
			"down":  in.Has(engine.Down),
			"left":  in.Has(engine.Left),
			"right": in.Has(engine.Right),
		})
	}
}

// SetInput replaces the held directions for every following tick.
func SetInput(ctl Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulation attached"})
			return
		}
		var req inputRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
		in := engine.InputFrom(req.Up, req.Down, req.Left, req.Right)
		ctl.SetInput(in)
		c.JSON(http.StatusOK, gin.H{"input": in.String()})
	}
}

type wallRequest struct {
	Left   *int `json:"left" binding:"required"`
	Top    *int `json:"top" binding:"required"`
	Right  *int `json:"right" binding:"required"`
	Bottom *int `json:"bottom" binding:"required"`
}

// MoveWall refits a moving wall.
func MoveWall(ctl Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulation attached"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wall id"})
			return
		}
		var req wallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "left, top, right and bottom required"})
			return
		}
		r := engine.Rect{Left: *req.Left, Top: *req.Top, Right: *req.Right, Bottom: *req.Bottom}

		switch err := ctl.MoveWall(id, r); {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"id": id, "rect": r})
		case errors.Is(err, engine.ErrUnknownWall):
			c.JSON(http.StatusNotFound, gin.H{"error": "wall not found"})
		case errors.Is(err, engine.ErrStaticWall):
			c.JSON(http.StatusConflict, gin.H{"error": "wall is not movable"})
		case errors.Is(err, engine.ErrInvalidRect):
			c.JSON(http.StatusBadRequest, gin.H{"error": "rectangle is empty inside the arena"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
