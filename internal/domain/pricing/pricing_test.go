// internal/domain/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		TaxRate:               0.08,
		FlatShippingFee:       999,
		FreeShippingThreshold: 10000,
	}
}

func TestCalculateEmptyCart(t *testing.T) {
	totals := Calculate(nil, testConfig())

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Shipping)
	assert.Equal(t, int64(0), totals.Tax)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCalculateBelowFreeShippingThreshold(t *testing.T) {
	lines := []Line{
		{UnitPrice: 2500, Quantity: 2},
	}

	totals := Calculate(lines, testConfig())

	assert.Equal(t, int64(5000), totals.Subtotal)
	assert.Equal(t, int64(999), totals.Shipping)
	assert.Equal(t, int64(400), totals.Tax)
	assert.Equal(t, int64(6399), totals.Total)
}

func TestCalculateAtFreeShippingThreshold(t *testing.T) {
	lines := []Line{
		{UnitPrice: 10000, Quantity: 1},
	}

	totals := Calculate(lines, testConfig())

	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Shipping, "shipping is waived exactly at the threshold")
	assert.Equal(t, int64(800), totals.Tax)
	assert.Equal(t, int64(10800), totals.Total)
}

func TestCalculateMultipleLines(t *testing.T) {
	lines := []Line{
		{UnitPrice: 349900, Quantity: 1},
		{UnitPrice: 2999, Quantity: 3},
	}

	totals := Calculate(lines, testConfig())

	assert.Equal(t, int64(358897), totals.Subtotal)
	assert.Equal(t, int64(0), totals.Shipping)
	assert.Equal(t, totals.Subtotal+totals.Shipping+totals.Tax, totals.Total)
}

func TestCalculateTaxRounding(t *testing.T) {
	// 1111 * 0.08 = 88.88, rounds to 89
	lines := []Line{
		{UnitPrice: 1111, Quantity: 1},
	}

	totals := Calculate(lines, testConfig())

	assert.Equal(t, int64(89), totals.Tax)
	assert.Equal(t, int64(1111+999+89), totals.Total)
}
