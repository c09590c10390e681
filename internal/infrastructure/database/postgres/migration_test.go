// internal/infrastructure/database/postgres/migration_test.go
package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorefrontCategorySlugs(t *testing.T) {
	// Slugs the storefront navigation filters by
	expected := []string{"laptops", "phones", "tablets", "audio", "accessories", "gaming"}

	require.Len(t, storefrontCategories, len(expected))
	for i, cat := range storefrontCategories {
		assert.Equal(t, expected[i], cat.Slug)
		assert.True(t, cat.IsActive, "category %s", cat.Slug)
		assert.Equal(t, i+1, cat.SortOrder, "category %s", cat.Slug)
	}
}

func TestCatalogSeedsResolveSeededCategories(t *testing.T) {
	categoryIDs := make(map[string]uint)
	for i, cat := range storefrontCategories {
		categoryIDs[cat.Slug] = uint(i + 1)
	}

	seeds := catalogSeeds(categoryIDs)
	require.NotEmpty(t, seeds)

	skus := make(map[string]bool)
	slugs := make(map[string]bool)
	for _, seed := range seeds {
		assert.NotZero(t, seed.product.CategoryID, "product %s references a category slug that is not seeded", seed.product.SKU)
		assert.Positive(t, seed.product.Price, "product %s", seed.product.SKU)
		assert.NotEmpty(t, seed.images, "product %s", seed.product.SKU)

		assert.False(t, skus[seed.product.SKU], "duplicate SKU %s", seed.product.SKU)
		assert.False(t, slugs[seed.product.Slug], "duplicate slug %s", seed.product.Slug)
		skus[seed.product.SKU] = true
		slugs[seed.product.Slug] = true
	}
}
