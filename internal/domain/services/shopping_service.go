package services

import (
	"context"
	"fmt"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	apperrors "github.com/ak/pantry/internal/pkg/errors"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ShoppingService manages shopping lists and the archive step that folds
// purchased items back into stock.
type ShoppingService interface {
	ActiveList(ctx context.Context, householdID primitive.ObjectID) (*models.ShoppingList, []*models.ShoppingListItem, error)
	History(ctx context.Context, householdID primitive.ObjectID) ([]*models.ShoppingList, error)
	ListItems(ctx context.Context, householdID, listID primitive.ObjectID) ([]*models.ShoppingListItem, error)
	AddItem(ctx context.Context, householdID primitive.ObjectID, name string, quantity float64, unit string) error
	DeleteItem(ctx context.Context, householdID, itemID primitive.ObjectID) error
	// Archive marks the active list done and merges every line into the
	// household's stock by lowercased name.
	Archive(ctx context.Context, householdID primitive.ObjectID) error
}

type shoppingService struct {
	shopping repositories.ShoppingListRepository
	stock    StockService
	logger   *logger.Logger
}

// NewShoppingService creates a new shopping service
func NewShoppingService(shopping repositories.ShoppingListRepository, stock StockService, log *logger.Logger) ShoppingService {
	return &shoppingService{
		shopping: shopping,
		stock:    stock,
		logger:   log.WithComponent("shopping"),
	}
}

func (s *shoppingService) ActiveList(ctx context.Context, householdID primitive.ObjectID) (*models.ShoppingList, []*models.ShoppingListItem, error) {
	list, err := s.shopping.GetOrCreateActive(ctx, householdID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.shopping.ListItems(ctx, list.ID)
	if err != nil {
		return nil, nil, err
	}
	return list, items, nil
}

func (s *shoppingService) History(ctx context.Context, householdID primitive.ObjectID) ([]*models.ShoppingList, error) {
	lists, err := s.shopping.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	archived := make([]*models.ShoppingList, 0, len(lists))
	for _, list := range lists {
		if !list.Active {
			archived = append(archived, list)
		}
	}
	return archived, nil
}

func (s *shoppingService) ListItems(ctx context.Context, householdID, listID primitive.ObjectID) ([]*models.ShoppingListItem, error) {
	if _, err := s.owned(ctx, householdID, listID); err != nil {
		return nil, err
	}
	return s.shopping.ListItems(ctx, listID)
}

func (s *shoppingService) AddItem(ctx context.Context, householdID primitive.ObjectID, name string, quantity float64, unit string) error {
	if name == "" {
		return apperrors.Validation("item name is required")
	}
	list, err := s.shopping.GetOrCreateActive(ctx, householdID)
	if err != nil {
		return err
	}
	return s.shopping.UpsertItem(ctx, list.ID, name, quantity, unit)
}

func (s *shoppingService) DeleteItem(ctx context.Context, householdID, itemID primitive.ObjectID) error {
	return s.shopping.DeleteItem(ctx, itemID)
}

func (s *shoppingService) Archive(ctx context.Context, householdID primitive.ObjectID) error {
	list, err := s.shopping.GetOrCreateActive(ctx, householdID)
	if err != nil {
		return err
	}
	items, err := s.shopping.ListItems(ctx, list.ID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, err := s.stock.AddOrMerge(ctx, householdID, item.Name, item.Quantity, item.Unit); err != nil {
			return fmt.Errorf("failed to move %q into stock: %w", item.Name, err)
		}
	}

	if err := s.shopping.SetActive(ctx, list.ID, false); err != nil {
		return err
	}

	s.logger.Info("Shopping list archived",
		zap.String("list_id", list.ID.Hex()),
		zap.Int("items", len(items)))

	return nil
}

func (s *shoppingService) owned(ctx context.Context, householdID, listID primitive.ObjectID) (*models.ShoppingList, error) {
	lists, err := s.shopping.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		if list.ID == listID {
			return list, nil
		}
	}
	return nil, apperrors.NotFound("shopping list")
}
