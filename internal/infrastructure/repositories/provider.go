package repositories

import (
	"github.com/ak/pantry/internal/domain/repositories"
	"github.com/ak/pantry/internal/infrastructure/database"
)

// Provider holds all repository instances
type Provider struct {
	Household    repositories.HouseholdRepository
	User         repositories.UserRepository
	Stock        repositories.StockRepository
	Meal         repositories.MealRepository
	ShoppingList repositories.ShoppingListRepository
}

// NewProvider creates a new repository provider
func NewProvider(db *database.MongoDB) *Provider {
	return &Provider{
		Household:    NewHouseholdRepository(db),
		User:         NewUserRepository(db),
		Stock:        NewStockRepository(db),
		Meal:         NewMealRepository(db),
		ShoppingList: NewShoppingListRepository(db),
	}
}
