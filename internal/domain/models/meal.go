package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is a planned (active) or cooked (inactive) meal of a household.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HouseholdID primitive.ObjectID `bson:"household_id" json:"household_id"`
	Name        string             `bson:"name" json:"name"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// MealItem is one row of a meal's ingredient requirement.
type MealItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealID      primitive.ObjectID `bson:"meal_id" json:"meal_id"`
	HouseholdID primitive.ObjectID `bson:"household_id" json:"household_id"`
	Name        string             `bson:"name" json:"name"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Unit        string             `bson:"unit" json:"unit"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// RequiredLine converts the meal item into the read-only value the
// reconciliation engine consumes.
func (m *MealItem) RequiredLine() RequiredLine {
	return RequiredLine{
		Name:     m.Name,
		Quantity: m.Quantity,
		Unit:     m.Unit,
	}
}
