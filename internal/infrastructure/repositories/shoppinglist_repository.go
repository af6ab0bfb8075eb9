package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	"github.com/ak/pantry/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type shoppingListRepository struct {
	lists *mongo.Collection
	items *mongo.Collection
}

func NewShoppingListRepository(db *database.MongoDB) repositories.ShoppingListRepository {
	return &shoppingListRepository{
		lists: db.Collection(database.CollectionShoppingLists),
		items: db.Collection(database.CollectionShoppingListItems),
	}
}

func (r *shoppingListRepository) GetOrCreateActive(ctx context.Context, householdID primitive.ObjectID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := r.lists.FindOne(ctx, bson.M{"household_id": householdID, "active": true}).Decode(&list)
	if err == nil {
		return &list, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	list = models.ShoppingList{
		HouseholdID: householdID,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	result, err := r.lists.InsertOne(ctx, list)
	if err != nil {
		return nil, err
	}
	list.ID = result.InsertedID.(primitive.ObjectID)
	return &list, nil
}

func (r *shoppingListRepository) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.ShoppingList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.lists.Find(ctx, bson.M{"household_id": householdID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*models.ShoppingList
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}

	return lists, nil
}

func (r *shoppingListRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := r.lists.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}},
	)
	return err
}

func (r *shoppingListRepository) UpsertItem(ctx context.Context, listID primitive.ObjectID, name string, quantity float64, unit string) error {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	// Merge by name: add quantities when the line already exists.
	result, err := r.items.UpdateOne(ctx,
		bson.M{"list_id": listID, "name_lower": nameLower},
		bson.M{
			"$inc": bson.M{"quantity": quantity},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	item := models.ShoppingListItem{
		ListID:    listID,
		Name:      name,
		NameLower: nameLower,
		Quantity:  quantity,
		Unit:      unit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err = r.items.InsertOne(ctx, item)
	return err
}

func (r *shoppingListRepository) ListItems(ctx context.Context, listID primitive.ObjectID) ([]*models.ShoppingListItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_lower", Value: 1}})

	cursor, err := r.items.Find(ctx, bson.M{"list_id": listID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.ShoppingListItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *shoppingListRepository) DeleteItem(ctx context.Context, itemID primitive.ObjectID) error {
	_, err := r.items.DeleteOne(ctx, bson.M{"_id": itemID})
	return err
}
