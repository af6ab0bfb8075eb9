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
)

type householdRepository struct {
	collection *mongo.Collection
}

func NewHouseholdRepository(db *database.MongoDB) repositories.HouseholdRepository {
	return &householdRepository{
		collection: db.Collection(database.CollectionHouseholds),
	}
}

func (r *householdRepository) Create(ctx context.Context, household *models.Household) error {
	household.CreatedAt = time.Now()
	household.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, household)
	if err != nil {
		return err
	}
	household.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *householdRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Household, error) {
	var household models.Household
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&household)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) AddMembers(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"members": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *householdRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
