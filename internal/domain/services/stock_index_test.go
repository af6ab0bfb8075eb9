package services

import (
	"testing"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockNamed(names ...string) []*models.StockItem {
	items := make([]*models.StockItem, 0, len(names))
	for _, name := range names {
		items = append(items, &models.StockItem{Name: name, Quantity: 1})
	}
	return items
}

func TestStockIndexFindNormalized(t *testing.T) {
	idx := NewStockIndex(stockNamed("Fresh Basil", "Onion", "Milk"))

	item := idx.FindNormalized("basil")
	require.NotNil(t, item)
	assert.Equal(t, "Fresh Basil", item.Name)

	assert.Nil(t, idx.FindNormalized("saffron"))
}

func TestStockIndexSearch(t *testing.T) {
	idx := NewStockIndex(stockNamed("tomato", "onion", "chicken"))

	t.Run("near match above threshold", func(t *testing.T) {
		matches := idx.Search(NormalizeName("tomatoes"))
		require.NotEmpty(t, matches)
		assert.Equal(t, "tomato", matches[0].Item.Name)
		assert.GreaterOrEqual(t, matches[0].Score, matchThreshold)
	})

	t.Run("unrelated query rejected", func(t *testing.T) {
		assert.Empty(t, idx.Search(NormalizeName("saffron")))
	})

	t.Run("subsequence containment", func(t *testing.T) {
		matches := idx.Search("chick")
		require.NotEmpty(t, matches)
		assert.Equal(t, "chicken", matches[0].Item.Name)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Nil(t, idx.Search(""))
	})
}

func TestStockIndexSearchWordLevel(t *testing.T) {
	idx := NewStockIndex(stockNamed("red onion"))

	matches := idx.Search("onion")
	require.NotEmpty(t, matches)
	assert.Equal(t, "red onion", matches[0].Item.Name)
	assert.InDelta(t, 0.9, matches[0].Score, 0.01)
}

func TestStockIndexSearchOrdering(t *testing.T) {
	idx := NewStockIndex(stockNamed("tomato", "tomato paste"))

	matches := idx.Search("tomato")
	require.Len(t, matches, 2)
	assert.Equal(t, "tomato", matches[0].Item.Name)
	assert.Equal(t, float64(1), matches[0].Score)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, float64(1), similarity("onion", "onion"))
	assert.InDelta(t, 1-1.0/7, similarity("tomatoe", "tomato"), 0.001)
	assert.Equal(t, float64(1), similarity("", ""))
	assert.Less(t, similarity("saffron", "onion"), matchThreshold)
}
