// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCartAddAccumulatesQuantity(t *testing.T) {
	c := &SessionCart{SessionID: "test-session"}

	c.Add(1, 2)
	c.Add(1, 3)
	c.Add(2, 1)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, uint(1), c.Items[0].ProductID)
	assert.Equal(t, 6, c.TotalQuantity())
}

func TestSessionCartSetQuantity(t *testing.T) {
	c := &SessionCart{}
	c.Add(1, 2)

	ok := c.SetQuantity(1, 7)
	assert.True(t, ok)
	assert.Equal(t, 7, c.Items[0].Quantity)

	ok = c.SetQuantity(99, 1)
	assert.False(t, ok, "unknown product is reported")
}

func TestSessionCartSetQuantityZeroRemovesLine(t *testing.T) {
	c := &SessionCart{}
	c.Add(1, 2)
	c.Add(2, 1)

	ok := c.SetQuantity(1, 0)
	assert.True(t, ok)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, uint(2), c.Items[0].ProductID)
}

func TestSessionCartRemove(t *testing.T) {
	c := &SessionCart{}
	c.Add(1, 2)
	c.Add(2, 1)

	c.Remove(1)
	assert.Len(t, c.Items, 1)

	// Removing an absent product is a no-op
	c.Remove(42)
	assert.Len(t, c.Items, 1)
}

func TestSessionCartClear(t *testing.T) {
	c := &SessionCart{}
	c.Add(1, 2)
	c.Add(2, 3)

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalQuantity())
}
