package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Household groups users sharing one stock inventory, meal plan and
// shopping lists.
type Household struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Members   int                `bson:"members" json:"members"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// User is a member of a household
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HouseholdID  primitive.ObjectID `bson:"household_id" json:"household_id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
