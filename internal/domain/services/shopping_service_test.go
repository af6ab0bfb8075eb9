package services

import (
	"context"
	"testing"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type shoppingFixture struct {
	household primitive.ObjectID
	stock     *fakeStockRepo
	shopping  *fakeShoppingRepo
	service   ShoppingService
}

func newShoppingFixture(t *testing.T, items ...models.StockItem) *shoppingFixture {
	t.Helper()
	household := primitive.NewObjectID()
	for i := range items {
		items[i].HouseholdID = household
	}

	stock := newFakeStockRepo(items...)
	shopping := &fakeShoppingRepo{}
	log := testLogger()

	return &shoppingFixture{
		household: household,
		stock:     stock,
		shopping:  shopping,
		service:   NewShoppingService(shopping, NewStockService(stock, log), log),
	}
}

func TestShoppingAddItemMerges(t *testing.T) {
	f := newShoppingFixture(t)

	require.NoError(t, f.service.AddItem(context.Background(), f.household, "Milk", 1, "l"))
	require.NoError(t, f.service.AddItem(context.Background(), f.household, "milk", 2, "l"))

	_, items, err := f.service.ActiveList(context.Background(), f.household)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].Quantity)
}

func TestShoppingArchiveMovesItemsToStock(t *testing.T) {
	f := newShoppingFixture(t, models.StockItem{Name: "onion", Quantity: 2, Unit: "pcs"})

	require.NoError(t, f.service.AddItem(context.Background(), f.household, "Onion", 3, "pcs"))
	require.NoError(t, f.service.AddItem(context.Background(), f.household, "saffron", 1, "g"))

	require.NoError(t, f.service.Archive(context.Background(), f.household))

	// Purchased onions merge into the existing stock item.
	onion := f.stock.find("onion")
	require.NotNil(t, onion)
	assert.Equal(t, 5.0, onion.Quantity)

	// Saffron is new stock.
	require.NotNil(t, f.stock.find("saffron"))

	// The archived list is no longer active; a fresh one starts empty.
	history, err := f.service.History(context.Background(), f.household)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, items, err := f.service.ActiveList(context.Background(), f.household)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestShoppingDeleteItem(t *testing.T) {
	f := newShoppingFixture(t)

	require.NoError(t, f.service.AddItem(context.Background(), f.household, "milk", 1, "l"))

	_, items, err := f.service.ActiveList(context.Background(), f.household)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, f.service.DeleteItem(context.Background(), f.household, items[0].ID))

	_, items, err = f.service.ActiveList(context.Background(), f.household)
	require.NoError(t, err)
	assert.Empty(t, items)
}
