package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/arena/internal/auth"
	"github.com/playmatatu/arena/internal/config"
)

// IssueOperatorToken exchanges the operator key for a bearer token.
func IssueOperatorToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Key      string `json:"key" binding:"required"`
			Operator string `json:"operator"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key required"})
			return
		}
		if err := auth.VerifyOperatorKey(cfg.OperatorKeyHash, req.Key); err != nil {
			log.Printf("[AUTH] operator key rejected for %q: %v", req.Operator, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid key"})
			return
		}
		if req.Operator == "" {
			req.Operator = "operator"
		}

		ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
		token, exp, err := auth.IssueToken(cfg.JWTSecret, req.Operator, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": exp.Format(time.RFC3339)})
	}
}
