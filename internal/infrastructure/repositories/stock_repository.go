package repositories

import (
	"context"
	"time"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	"github.com/ak/pantry/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type stockRepository struct {
	collection *mongo.Collection
}

func NewStockRepository(db *database.MongoDB) repositories.StockRepository {
	return &stockRepository{
		collection: db.Collection(database.CollectionStockItems),
	}
}

func (r *stockRepository) Create(ctx context.Context, item *models.StockItem) error {
	item.CreatedAt = time.Now()
	item.Touch()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *stockRepository) GetByID(ctx context.Context, id, householdID primitive.ObjectID) (*models.StockItem, error) {
	var item models.StockItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "household_id": householdID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.StockItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_lower", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"household_id": householdID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.StockItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *stockRepository) Update(ctx context.Context, item *models.StockItem) error {
	item.Touch()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	return err
}

func (r *stockRepository) Delete(ctx context.Context, id, householdID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "household_id": householdID})
	return err
}

func (r *stockRepository) DeductOrDelete(ctx context.Context, item *models.StockItem, quantity float64) error {
	// Deduct against the stored quantity, not the caller's snapshot, so
	// repeated deductions of a shared item accumulate.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.StockItem
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": item.ID},
		bson.M{
			"$inc": bson.M{"quantity": -quantity},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&updated)
	if err != nil {
		return err
	}

	item.Quantity = updated.Quantity
	if updated.Quantity == 0 {
		_, err = r.collection.DeleteOne(ctx, bson.M{"_id": item.ID})
	}
	return err
}
