// internal/domain/product/entity_test.go
package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecListValue(t *testing.T) {
	var nilSpecs SpecList
	v, err := nilSpecs.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	specs := SpecList{{Key: "Display", Value: "16-inch Liquid Retina XDR"}}
	v, err = specs.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"Display","value":"16-inch Liquid Retina XDR"}]`, v.(string))
}

func TestSpecListScan(t *testing.T) {
	var specs SpecList
	require.NoError(t, specs.Scan(nil))
	assert.Empty(t, specs)

	require.NoError(t, specs.Scan(`[{"key":"RAM","value":"36GB"}]`))
	require.Len(t, specs, 1)
	assert.Equal(t, "RAM", specs[0].Key)

	require.NoError(t, specs.Scan([]byte(``)))
	assert.Empty(t, specs)

	assert.Error(t, specs.Scan(12345))
}

func TestSpecListGet(t *testing.T) {
	specs := SpecList{
		{Key: "RAM", Value: "36GB"},
		{Key: "Storage", Value: "1TB"},
	}

	v, ok := specs.Get("Storage")
	assert.True(t, ok)
	assert.Equal(t, "1TB", v)

	_, ok = specs.Get("GPU")
	assert.False(t, ok)
}

func TestCategoryJSONEmbedsProducts(t *testing.T) {
	cat := Category{
		ID:   1,
		Name: "Phones",
		Slug: "phones",
		Products: []Product{
			{ID: 2, Name: "iPhone 16 Pro", Slug: "iphone-16-pro"},
		},
	}

	data, err := json.Marshal(cat)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"products"`)
	assert.Contains(t, string(data), "iphone-16-pro")
}

func TestProductIsOnSale(t *testing.T) {
	tests := []struct {
		name           string
		price          int64
		compareAtPrice int64
		onSale         bool
	}{
		{"marked down", 2999, 3999, true},
		{"no compare-at price", 2999, 0, false},
		{"compare-at equals price", 2999, 2999, false},
		{"compare-at below price", 2999, 1999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Price: tt.price, CompareAtPrice: tt.compareAtPrice}
			assert.Equal(t, tt.onSale, p.IsOnSale())
		})
	}
}

func TestProductGetDiscountPercentage(t *testing.T) {
	p := &Product{Price: 7500, CompareAtPrice: 10000}
	assert.InDelta(t, 25.0, p.GetDiscountPercentage(), 0.001)

	notOnSale := &Product{Price: 7500}
	assert.Equal(t, 0.0, notOnSale.GetDiscountPercentage())
}

func TestProductIsInStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 3}).IsInStock())
	assert.False(t, (&Product{Stock: 0}).IsInStock())
}

func TestProductPrimaryImage(t *testing.T) {
	p := &Product{
		Images: []ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", IsPrimary: true},
		},
	}
	assert.Equal(t, "https://cdn.example.com/b.jpg", p.PrimaryImage())

	// No primary flag falls back to the first image
	fallback := &Product{
		Images: []ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg"},
		},
	}
	assert.Equal(t, "https://cdn.example.com/a.jpg", fallback.PrimaryImage())

	assert.Equal(t, "", (&Product{}).PrimaryImage())
}
