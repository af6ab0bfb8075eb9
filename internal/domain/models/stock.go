package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockItem is one ingredient a household currently owns. Unit may be
// empty for unitless items (pieces, "to taste").
// By convention there is at most one item per (household, lowercased name),
// but this is not enforced and the matching engine tolerates duplicates.
type StockItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HouseholdID primitive.ObjectID `bson:"household_id" json:"household_id"`
	Name        string             `bson:"name" json:"name"`
	NameLower   string             `bson:"name_lower" json:"-"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Unit        string             `bson:"unit" json:"unit"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Touch refreshes the derived name_lower field and update timestamp.
func (s *StockItem) Touch() {
	s.NameLower = strings.ToLower(s.Name)
	s.UpdatedAt = time.Now()
}
