package repositories

import (
	"context"

	"github.com/ak/pantry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HouseholdRepository defines operations for household data access
type HouseholdRepository interface {
	Create(ctx context.Context, household *models.Household) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Household, error)
	AddMembers(ctx context.Context, id primitive.ObjectID, delta int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines operations for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.User, error)
}

// StockRepository defines operations for stock item data access
type StockRepository interface {
	Create(ctx context.Context, item *models.StockItem) error
	GetByID(ctx context.Context, id, householdID primitive.ObjectID) (*models.StockItem, error)
	ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.StockItem, error)
	Update(ctx context.Context, item *models.StockItem) error
	Delete(ctx context.Context, id, householdID primitive.ObjectID) error
	// DeductOrDelete subtracts quantity from the item, deleting the record
	// when the result lands on exactly zero and persisting the new quantity
	// otherwise. A batch that over-allocates one item can persist a negative
	// quantity; the engine documents rather than prevents this.
	DeductOrDelete(ctx context.Context, item *models.StockItem, quantity float64) error
}

// MealRepository defines operations for meal and meal item data access
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.Meal, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CreateItems(ctx context.Context, items []*models.MealItem) error
	ListItems(ctx context.Context, mealID primitive.ObjectID) ([]*models.MealItem, error)
	DeleteItems(ctx context.Context, mealID primitive.ObjectID) error
}

// ShoppingListRepository defines operations for shopping list data access
type ShoppingListRepository interface {
	// GetOrCreateActive returns the household's active list, creating one
	// when none exists.
	GetOrCreateActive(ctx context.Context, householdID primitive.ObjectID) (*models.ShoppingList, error)
	ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.ShoppingList, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	// UpsertItem inserts a line, or adds quantity to an existing line with
	// the same lowercased name.
	UpsertItem(ctx context.Context, listID primitive.ObjectID, name string, quantity float64, unit string) error
	ListItems(ctx context.Context, listID primitive.ObjectID) ([]*models.ShoppingListItem, error)
	DeleteItem(ctx context.Context, itemID primitive.ObjectID) error
}
