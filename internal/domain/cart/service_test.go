// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltstore/backend/internal/pkg/apperr"
)

func TestGetCartItemCountPropagatesCartErrors(t *testing.T) {
	s := NewService(nil, nil, nil)

	// A guest cart lookup without a session ID fails before any store is hit
	count, err := s.GetCartItemCount(nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Zero(t, count)
}
