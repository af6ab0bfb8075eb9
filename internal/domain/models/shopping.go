package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShoppingList is a household's shopping list. At most one list per
// household is active; archived lists are kept as history.
type ShoppingList struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HouseholdID primitive.ObjectID `bson:"household_id" json:"household_id"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ShoppingListItem is one line on a shopping list. Lines are merged by
// lowercased name: adding a name that already exists on the list adds the
// quantities together instead of duplicating the row.
type ShoppingListItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ListID    primitive.ObjectID `bson:"list_id" json:"list_id"`
	Name      string             `bson:"name" json:"name"`
	NameLower string             `bson:"name_lower" json:"-"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Unit      string             `bson:"unit" json:"unit"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
