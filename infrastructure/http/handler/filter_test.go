package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSweetFilter(t *testing.T) {
	t.Run("all parameters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/sweets/search?q=choc&minPrice=1.5&maxPrice=4", nil)

		filter, err := parseSweetFilter(req)
		assert.NoError(t, err)
		assert.Equal(t, "choc", filter.Query)
		if assert.NotNil(t, filter.MinPrice) {
			assert.Equal(t, 1.5, *filter.MinPrice)
		}
		if assert.NotNil(t, filter.MaxPrice) {
			assert.Equal(t, 4.0, *filter.MaxPrice)
		}
	})

	t.Run("absent parameters leave bounds nil", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/sweets/search", nil)

		filter, err := parseSweetFilter(req)
		assert.NoError(t, err)
		assert.Empty(t, filter.Query)
		assert.Nil(t, filter.MinPrice)
		assert.Nil(t, filter.MaxPrice)
	})

	t.Run("malformed minPrice", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/sweets/search?minPrice=cheap", nil)

		_, err := parseSweetFilter(req)
		assert.EqualError(t, err, `invalid minPrice "cheap"`)
	})

	t.Run("malformed maxPrice", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/sweets/search?maxPrice=12,50", nil)

		_, err := parseSweetFilter(req)
		assert.EqualError(t, err, `invalid maxPrice "12,50"`)
	})
}
