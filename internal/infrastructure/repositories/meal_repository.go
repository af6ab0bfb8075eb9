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

type mealRepository struct {
	meals *mongo.Collection
	items *mongo.Collection
}

func NewMealRepository(db *database.MongoDB) repositories.MealRepository {
	return &mealRepository{
		meals: db.Collection(database.CollectionMeals),
		items: db.Collection(database.CollectionMealItems),
	}
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) error {
	meal.CreatedAt = time.Now()
	meal.UpdatedAt = time.Now()
	meal.Active = true

	result, err := r.meals.InsertOne(ctx, meal)
	if err != nil {
		return err
	}
	meal.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var meal models.Meal
	err := r.meals.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.meals.Find(ctx, bson.M{"household_id": householdID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []*models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}

	return meals, nil
}

func (r *mealRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := r.meals.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}},
	)
	return err
}

func (r *mealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := r.DeleteItems(ctx, id); err != nil {
		return err
	}
	_, err := r.meals.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mealRepository) CreateItems(ctx context.Context, items []*models.MealItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, len(items))
	for i, item := range items {
		item.CreatedAt = time.Now()
		docs[i] = item
	}

	result, err := r.items.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range result.InsertedIDs {
		items[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

func (r *mealRepository) ListItems(ctx context.Context, mealID primitive.ObjectID) ([]*models.MealItem, error) {
	cursor, err := r.items.Find(ctx, bson.M{"meal_id": mealID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.MealItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *mealRepository) DeleteItems(ctx context.Context, mealID primitive.ObjectID) error {
	_, err := r.items.DeleteMany(ctx, bson.M{"meal_id": mealID})
	return err
}
