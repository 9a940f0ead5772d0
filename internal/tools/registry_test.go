package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	s, ok := r.Lookup("search_products")
	require.True(t, ok)
	assert.Equal(t, KindSearchProducts, s.Kind)

	_, ok = r.Lookup("delete_everything")
	assert.False(t, ok)

	assert.Len(t, r.Specs(), 8)
}

func TestPromptJSON(t *testing.T) {
	r := NewRegistry()

	var entries []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Parameters  struct {
			Type       string                    `json:"type"`
			Properties map[string]map[string]any `json:"properties"`
			Required   []string                  `json:"required"`
		} `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.PromptJSON()), &entries))
	require.Len(t, entries, 8)

	byName := map[string]int{}
	for i, e := range entries {
		byName[e.Name] = i
	}
	search := entries[byName["search_products"]]
	assert.Equal(t, "object", search.Parameters.Type)
	assert.Contains(t, search.Parameters.Properties, "max_price")
	assert.Equal(t, []string{"query"}, search.Parameters.Required)

	view := entries[byName["view_cart"]]
	assert.Empty(t, view.Parameters.Required)
}

func TestParseArgs(t *testing.T) {
	r := NewRegistry()

	t.Run("search with optional fields", func(t *testing.T) {
		spec, _ := r.Lookup("search_products")
		args, err := ParseArgs(spec, map[string]any{
			"query":     "shoes",
			"category":  "footwear",
			"max_price": 150.0,
		})
		require.NoError(t, err)
		assert.Equal(t, "shoes", args.Search.Query)
		assert.Equal(t, "footwear", args.Search.Category)
		assert.Equal(t, 150.0, args.Search.MaxPrice)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		spec, _ := r.Lookup("search_products")
		_, err := ParseArgs(spec, map[string]any{"category": "footwear"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("recommend criteria defaults to related", func(t *testing.T) {
		spec, _ := r.Lookup("recommend_products")
		args, err := ParseArgs(spec, map[string]any{"product_id": "p001"})
		require.NoError(t, err)
		assert.Equal(t, "related", args.Recommend.Criteria)
	})

	t.Run("cart quantity decodes from JSON number", func(t *testing.T) {
		spec, _ := r.Lookup("add_to_cart")
		args, err := ParseArgs(spec, map[string]any{"product_id": "p002", "quantity": 5.0})
		require.NoError(t, err)
		assert.Equal(t, 5, args.CartAdd.Quantity)
	})

	t.Run("cart quantity rejects fractions and non-positives", func(t *testing.T) {
		spec, _ := r.Lookup("add_to_cart")
		_, err := ParseArgs(spec, map[string]any{"product_id": "p002", "quantity": 1.5})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = ParseArgs(spec, map[string]any{"product_id": "p002", "quantity": 0.0})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("wrong argument type", func(t *testing.T) {
		spec, _ := r.Lookup("get_order_status")
		_, err := ParseArgs(spec, map[string]any{"order_id": 12345.0})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("view_cart takes no arguments", func(t *testing.T) {
		spec, _ := r.Lookup("view_cart")
		args, err := ParseArgs(spec, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, KindViewCart, args.Kind)
	})
}
