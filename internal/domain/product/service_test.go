// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderClause(t *testing.T) {
	tests := []struct {
		sort     string
		expected string
	}{
		{SortPriceAsc, "price ASC"},
		{SortPriceDesc, "price DESC"},
		{SortNameAsc, "name ASC"},
		{SortNameDesc, "name DESC"},
		{SortNewest, "created_at DESC"},
		{SortRating, "rating DESC"},
		{"", "created_at DESC"},
		{"bogus", "created_at DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BuildOrderClause(tt.sort), "sort key %q", tt.sort)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 12, 30)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(2, 12, 30)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(3, 12, 30)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	// Exact multiple does not add a trailing page
	p = NewPagination(1, 10, 30)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(1, 12, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestGenerateSlug(t *testing.T) {
	s := &Service{}

	tests := []struct {
		name     string
		expected string
	}{
		{"MacBook Pro 16 M4 Max", "macbook-pro-16-m4-max"},
		{"Sony WH-1000XM6", "sony-wh-1000xm6"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"Trailing Punctuation!", "trailing-punctuation"},
		{"snake_case_name", "snake-case-name"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, s.generateSlug(tt.name), "name %q", tt.name)
	}
}
