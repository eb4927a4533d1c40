package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintParam parses a numeric path parameter. On failure it writes
// a 400 response and returns ok=false; the handler should just return.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		ErrorResponse(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}
