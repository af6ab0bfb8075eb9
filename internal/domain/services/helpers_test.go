package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// fakeConverter implements UnitConverter with a fixed conversion table
// keyed by "from->to".
type fakeConverter struct {
	conversions map[string]float64
	err         error
	calls       int
}

func (f *fakeConverter) Convert(ctx context.Context, amount float64, fromUnit, toUnit, ingredientName string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if factor, ok := f.conversions[fromUnit+"->"+toUnit]; ok {
		return amount * factor, nil
	}
	return 0, fmt.Errorf("no conversion from %s to %s", fromUnit, toUnit)
}

// fakeSubstituteSource implements SubstituteSource from a static map.
type fakeSubstituteSource struct {
	substitutes map[string][]string
	err         error
}

func (f *fakeSubstituteSource) Substitutes(ctx context.Context, ingredientName string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.substitutes[strings.ToLower(ingredientName)], nil
}

// fakeStockRepo is an in-memory StockRepository. Listing returns copies so
// callers hold a snapshot, the way a database read would.
type fakeStockRepo struct {
	mu    sync.Mutex
	items []models.StockItem
}

func newFakeStockRepo(items ...models.StockItem) *fakeStockRepo {
	repo := &fakeStockRepo{}
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		item.NameLower = strings.ToLower(item.Name)
		repo.items = append(repo.items, item)
	}
	return repo
}

func (r *fakeStockRepo) Create(ctx context.Context, item *models.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = primitive.NewObjectID()
	item.NameLower = strings.ToLower(item.Name)
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeStockRepo) GetByID(ctx context.Context, id, householdID primitive.ObjectID) (*models.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id && item.HouseholdID == householdID {
			copy := item
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StockItem
	for _, item := range r.items {
		if item.HouseholdID == householdID {
			copy := item
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) Update(ctx context.Context, item *models.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == item.ID {
			updated := *item
			updated.NameLower = strings.ToLower(updated.Name)
			r.items[i] = updated
			return nil
		}
	}
	return fmt.Errorf("stock item %s not found", item.ID.Hex())
}

func (r *fakeStockRepo) Delete(ctx context.Context, id, householdID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("stock item %s not found", id.Hex())
}

func (r *fakeStockRepo) DeductOrDelete(ctx context.Context, item *models.StockItem, quantity float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == item.ID {
			remaining := r.items[i].Quantity - quantity
			if remaining == 0 {
				r.items = append(r.items[:i], r.items[i+1:]...)
				return nil
			}
			r.items[i].Quantity = remaining
			return nil
		}
	}
	return fmt.Errorf("stock item %s not found", item.ID.Hex())
}

// find returns the stored item with the given name, or nil.
func (r *fakeStockRepo) find(name string) *models.StockItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			copy := item
			return &copy
		}
	}
	return nil
}

func (r *fakeStockRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// fakeMealRepo is an in-memory MealRepository.
type fakeMealRepo struct {
	mu    sync.Mutex
	meals map[primitive.ObjectID]*models.Meal
	items map[primitive.ObjectID][]*models.MealItem
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{
		meals: map[primitive.ObjectID]*models.Meal{},
		items: map[primitive.ObjectID][]*models.MealItem{},
	}
}

func (r *fakeMealRepo) Create(ctx context.Context, meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal.ID = primitive.NewObjectID()
	stored := *meal
	r.meals[meal.ID] = &stored
	return nil
}

func (r *fakeMealRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if meal, ok := r.meals[id]; ok {
		copy := *meal
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeMealRepo) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Meal
	for _, meal := range r.meals {
		if meal.HouseholdID == householdID {
			copy := *meal
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeMealRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal, ok := r.meals[id]
	if !ok {
		return fmt.Errorf("meal %s not found", id.Hex())
	}
	meal.Active = active
	return nil
}

func (r *fakeMealRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meals, id)
	return nil
}

func (r *fakeMealRepo) CreateItems(ctx context.Context, items []*models.MealItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		item.ID = primitive.NewObjectID()
		stored := *item
		r.items[item.MealID] = append(r.items[item.MealID], &stored)
	}
	return nil
}

func (r *fakeMealRepo) ListItems(ctx context.Context, mealID primitive.ObjectID) ([]*models.MealItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.MealItem(nil), r.items[mealID]...), nil
}

func (r *fakeMealRepo) DeleteItems(ctx context.Context, mealID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, mealID)
	return nil
}

// fakeShoppingRepo is an in-memory ShoppingListRepository.
type fakeShoppingRepo struct {
	mu    sync.Mutex
	lists []*models.ShoppingList
	items []*models.ShoppingListItem
}

func (r *fakeShoppingRepo) GetOrCreateActive(ctx context.Context, householdID primitive.ObjectID) (*models.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, list := range r.lists {
		if list.HouseholdID == householdID && list.Active {
			copy := *list
			return &copy, nil
		}
	}
	list := &models.ShoppingList{
		ID:          primitive.NewObjectID(),
		HouseholdID: householdID,
		Active:      true,
	}
	r.lists = append(r.lists, list)
	copy := *list
	return &copy, nil
}

func (r *fakeShoppingRepo) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ShoppingList
	for _, list := range r.lists {
		if list.HouseholdID == householdID {
			copy := *list
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeShoppingRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, list := range r.lists {
		if list.ID == id {
			list.Active = active
			return nil
		}
	}
	return fmt.Errorf("shopping list %s not found", id.Hex())
}

func (r *fakeShoppingRepo) UpsertItem(ctx context.Context, listID primitive.ObjectID, name string, quantity float64, unit string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lower := strings.ToLower(name)
	for _, item := range r.items {
		if item.ListID == listID && item.NameLower == lower {
			item.Quantity += quantity
			return nil
		}
	}
	r.items = append(r.items, &models.ShoppingListItem{
		ID:        primitive.NewObjectID(),
		ListID:    listID,
		Name:      name,
		NameLower: lower,
		Quantity:  quantity,
		Unit:      unit,
	})
	return nil
}

func (r *fakeShoppingRepo) ListItems(ctx context.Context, listID primitive.ObjectID) ([]*models.ShoppingListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ShoppingListItem
	for _, item := range r.items {
		if item.ListID == listID {
			copy := *item
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeShoppingRepo) DeleteItem(ctx context.Context, itemID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("shopping list item %s not found", itemID.Hex())
}

func (r *fakeShoppingRepo) findItem(name string) *models.ShoppingListItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	lower := strings.ToLower(name)
	for _, item := range r.items {
		if item.NameLower == lower {
			copy := *item
			return &copy
		}
	}
	return nil
}

// fakeHouseholdRepo is an in-memory HouseholdRepository.
type fakeHouseholdRepo struct {
	mu         sync.Mutex
	households map[primitive.ObjectID]*models.Household
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{households: map[primitive.ObjectID]*models.Household{}}
}

func (r *fakeHouseholdRepo) Create(ctx context.Context, household *models.Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	household.ID = primitive.NewObjectID()
	stored := *household
	r.households[household.ID] = &stored
	return nil
}

func (r *fakeHouseholdRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Household, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.households[id]; ok {
		copy := *h
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeHouseholdRepo) AddMembers(ctx context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.households[id]
	if !ok {
		return fmt.Errorf("household %s not found", id.Hex())
	}
	h.Members += delta
	return nil
}

func (r *fakeHouseholdRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.households, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.Hex())
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) ListByHousehold(ctx context.Context, householdID primitive.ObjectID) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if u.HouseholdID == householdID {
			copy := *u
			out = append(out, &copy)
		}
	}
	return out, nil
}
