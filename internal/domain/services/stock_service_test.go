package services

import (
	"context"
	"testing"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStockAddOrMerge(t *testing.T) {
	household := primitive.NewObjectID()
	repo := newFakeStockRepo()
	svc := NewStockService(repo, testLogger())

	first, err := svc.AddOrMerge(context.Background(), household, "Onion", 3, "pcs")
	require.NoError(t, err)
	assert.Equal(t, 3.0, first.Quantity)

	// Same name in different case merges instead of duplicating.
	merged, err := svc.AddOrMerge(context.Background(), household, "onion", 2, "pcs")
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5.0, merged.Quantity)
	assert.Equal(t, 1, repo.count())
}

func TestStockAddOrMergeScopedToHousehold(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewStockService(repo, testLogger())

	_, err := svc.AddOrMerge(context.Background(), primitive.NewObjectID(), "onion", 3, "pcs")
	require.NoError(t, err)
	_, err = svc.AddOrMerge(context.Background(), primitive.NewObjectID(), "onion", 2, "pcs")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.count(), "different households keep separate items")
}

func TestStockUpdateAndDelete(t *testing.T) {
	household := primitive.NewObjectID()
	repo := newFakeStockRepo(models.StockItem{HouseholdID: household, Name: "milk", Quantity: 1, Unit: "l"})
	svc := NewStockService(repo, testLogger())

	item := repo.find("milk")
	updated, err := svc.Update(context.Background(), household, item.ID, "Whole Milk", 2, "l")
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", updated.Name)
	assert.Equal(t, 2.0, updated.Quantity)

	require.NoError(t, svc.Delete(context.Background(), household, item.ID))
	assert.Zero(t, repo.count())

	err = svc.Delete(context.Background(), household, item.ID)
	assert.Error(t, err)
}

func TestStockUpdateToZeroDeletes(t *testing.T) {
	household := primitive.NewObjectID()
	repo := newFakeStockRepo(models.StockItem{HouseholdID: household, Name: "milk", Quantity: 1, Unit: "l"})
	svc := NewStockService(repo, testLogger())

	item := repo.find("milk")
	_, err := svc.Update(context.Background(), household, item.ID, "", 0, "l")
	require.NoError(t, err)
	assert.Zero(t, repo.count())
}
