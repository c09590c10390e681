// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voltstore/backend/internal/pkg/apperr"
)

// respondError maps a service error to an HTTP status and writes the
// standard error body
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperr.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = err.Error()
	}

	c.JSON(status, gin.H{
		"error": message,
	})
}

// parseIDParam parses a numeric path parameter, writing a 400 response on
// failure. Callers return immediately when err is non-nil.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid %s parameter", name),
		})
		return 0, err
	}
	return uint(id), nil
}
