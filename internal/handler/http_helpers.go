package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError terminates the request with a JSON error body.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// bindJSON decodes the request body into dst, answering 400 with the given
// message when the payload does not parse.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err == nil {
		return true
	}
	respondError(c, http.StatusBadRequest, message)
	return false
}

// parseUintParam reads a numeric id from the route parameters.
func parseUintParam(c *gin.Context, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a numeric id", key)
	}
	return uint(id), nil
}

// parsePositiveInt parses query values that must stay strictly positive,
// falling back instead of failing.
func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
