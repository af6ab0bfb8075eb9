package services

import (
	"context"
	"strings"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	apperrors "github.com/ak/pantry/internal/pkg/errors"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StockService manages a household's stock items.
type StockService interface {
	// AddOrMerge creates a stock item, or adds the quantity onto an
	// existing item whose lowercased name matches.
	AddOrMerge(ctx context.Context, householdID primitive.ObjectID, name string, quantity float64, unit string) (*models.StockItem, error)
	List(ctx context.Context, householdID primitive.ObjectID) ([]*models.StockItem, error)
	Update(ctx context.Context, householdID, id primitive.ObjectID, name string, quantity float64, unit string) (*models.StockItem, error)
	Delete(ctx context.Context, householdID, id primitive.ObjectID) error
}

type stockService struct {
	stock  repositories.StockRepository
	logger *logger.Logger
}

// NewStockService creates a new stock service
func NewStockService(stock repositories.StockRepository, log *logger.Logger) StockService {
	return &stockService{
		stock:  stock,
		logger: log.WithComponent("stock"),
	}
}

func (s *stockService) AddOrMerge(ctx context.Context, householdID primitive.ObjectID, name string, quantity float64, unit string) (*models.StockItem, error) {
	if name == "" {
		return nil, apperrors.Validation("item name is required")
	}

	items, err := s.stock.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(name)
	for _, item := range items {
		if item.NameLower == lower {
			item.Quantity += quantity
			if unit != "" {
				item.Unit = unit
			}
			if err := s.stock.Update(ctx, item); err != nil {
				return nil, err
			}
			s.logger.Info("Stock item merged",
				zap.String("name", item.Name),
				zap.Float64("quantity", item.Quantity))
			return item, nil
		}
	}

	item := &models.StockItem{
		HouseholdID: householdID,
		Name:        name,
		Quantity:    quantity,
		Unit:        unit,
	}
	if err := s.stock.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *stockService) List(ctx context.Context, householdID primitive.ObjectID) ([]*models.StockItem, error) {
	return s.stock.ListByHousehold(ctx, householdID)
}

func (s *stockService) Update(ctx context.Context, householdID, id primitive.ObjectID, name string, quantity float64, unit string) (*models.StockItem, error) {
	item, err := s.stock.GetByID(ctx, id, householdID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NotFound("stock item")
	}

	if name != "" {
		item.Name = name
	}
	item.Quantity = quantity
	item.Unit = unit

	// Setting the quantity to zero removes the item entirely.
	if quantity == 0 {
		if err := s.stock.Delete(ctx, id, householdID); err != nil {
			return nil, err
		}
		return item, nil
	}

	if err := s.stock.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *stockService) Delete(ctx context.Context, householdID, id primitive.ObjectID) error {
	item, err := s.stock.GetByID(ctx, id, householdID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperrors.NotFound("stock item")
	}
	return s.stock.Delete(ctx, id, householdID)
}
