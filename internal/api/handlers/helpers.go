package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter, falling back to def when it is
// missing or malformed and clamping it to [min, max].
func queryInt(c *gin.Context, key string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		v = def
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}
