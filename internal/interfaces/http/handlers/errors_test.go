// internal/interfaces/http/handlers/errors_test.go
package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/voltstore/backend/internal/pkg/apperr"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", fmt.Errorf("%w: quantity must be positive", apperr.ErrValidation), http.StatusBadRequest},
		{"invalid credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("%w: product 99", apperr.ErrNotFound), http.StatusNotFound},
		{"conflict", apperr.ErrConflict, http.StatusConflict},
		{"unavailable", apperr.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, fmt.Errorf("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, err := parseIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, err = parseIDParam(c, "id")
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
