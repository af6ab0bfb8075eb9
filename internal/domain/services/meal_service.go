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

// Flow selects what a reconciliation commit does besides deducting stock.
// Cooking marks the meal inactive; planning pushes missing lines onto the
// shopping list and keeps (or makes) the meal active.
type Flow string

const (
	FlowCook Flow = "cook"
	FlowPlan Flow = "plan"
)

// MealService manages meals and drives the reconciliation protocol for
// the cook and plan flows.
type MealService interface {
	Create(ctx context.Context, householdID primitive.ObjectID, name string, lines []models.RequiredLine) (*models.Meal, error)
	GetWithItems(ctx context.Context, id, householdID primitive.ObjectID) (*models.Meal, []*models.MealItem, error)
	List(ctx context.Context, householdID primitive.ObjectID) ([]*models.Meal, error)
	Delete(ctx context.Context, id, householdID primitive.ObjectID) error

	// Preview computes the reconciliation outcome for the meal's items
	// without mutating anything. When nothing is missing, confirmation is
	// granted automatically and the commit is applied immediately; the
	// returned CommitResult is non-nil in that case.
	Preview(ctx context.Context, id, householdID primitive.ObjectID, flow Flow) (*models.ReconciliationOutcome, *models.CommitResult, error)
	// Commit applies a previously previewed outcome that the user confirmed.
	Commit(ctx context.Context, id, householdID primitive.ObjectID, outcome *models.ReconciliationOutcome, flow Flow) (*models.CommitResult, error)
}

type mealService struct {
	meals     repositories.MealRepository
	reconcile ReconcileService
	logger    *logger.Logger
}

// NewMealService creates a new meal service
func NewMealService(meals repositories.MealRepository, reconcile ReconcileService, log *logger.Logger) MealService {
	return &mealService{
		meals:     meals,
		reconcile: reconcile,
		logger:    log.WithComponent("meals"),
	}
}

func (s *mealService) Create(ctx context.Context, householdID primitive.ObjectID, name string, lines []models.RequiredLine) (*models.Meal, error) {
	if name == "" {
		return nil, apperrors.Validation("meal name is required")
	}

	meal := &models.Meal{
		HouseholdID: householdID,
		Name:        name,
		Active:      true,
	}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	items := make([]*models.MealItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, &models.MealItem{
			MealID:      meal.ID,
			HouseholdID: householdID,
			Name:        line.Name,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
		})
	}
	if len(items) > 0 {
		if err := s.meals.CreateItems(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to create meal items: %w", err)
		}
	}

	s.logger.Info("Meal created",
		zap.String("meal_id", meal.ID.Hex()),
		zap.String("name", meal.Name),
		zap.Int("items", len(items)))

	return meal, nil
}

func (s *mealService) GetWithItems(ctx context.Context, id, householdID primitive.ObjectID) (*models.Meal, []*models.MealItem, error) {
	meal, err := s.getOwned(ctx, id, householdID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.meals.ListItems(ctx, meal.ID)
	if err != nil {
		return nil, nil, err
	}
	return meal, items, nil
}

func (s *mealService) List(ctx context.Context, householdID primitive.ObjectID) ([]*models.Meal, error) {
	return s.meals.ListByHousehold(ctx, householdID)
}

func (s *mealService) Delete(ctx context.Context, id, householdID primitive.ObjectID) error {
	meal, err := s.getOwned(ctx, id, householdID)
	if err != nil {
		return err
	}
	if err := s.meals.DeleteItems(ctx, meal.ID); err != nil {
		return err
	}
	return s.meals.Delete(ctx, meal.ID)
}

func (s *mealService) Preview(ctx context.Context, id, householdID primitive.ObjectID, flow Flow) (*models.ReconciliationOutcome, *models.CommitResult, error) {
	meal, items, err := s.GetWithItems(ctx, id, householdID)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]models.RequiredLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.RequiredLine())
	}

	outcome, err := s.reconcile.Preview(ctx, householdID, lines)
	if err != nil {
		return nil, nil, err
	}

	// Nothing missing means there is nothing to confirm.
	if len(outcome.Missing) == 0 {
		result, err := s.commitOutcome(ctx, meal, outcome, flow)
		if err != nil {
			return outcome, nil, err
		}
		return outcome, result, nil
	}

	return outcome, nil, nil
}

func (s *mealService) Commit(ctx context.Context, id, householdID primitive.ObjectID, outcome *models.ReconciliationOutcome, flow Flow) (*models.CommitResult, error) {
	meal, err := s.getOwned(ctx, id, householdID)
	if err != nil {
		return nil, err
	}
	if outcome.HouseholdID != householdID {
		return nil, fmt.Errorf("outcome belongs to a different household")
	}
	return s.commitOutcome(ctx, meal, outcome, flow)
}

func (s *mealService) commitOutcome(ctx context.Context, meal *models.Meal, outcome *models.ReconciliationOutcome, flow Flow) (*models.CommitResult, error) {
	opts := CommitOptions{MealID: meal.ID}
	switch flow {
	case FlowCook:
		opts.MarkCooked = true
	case FlowPlan:
		opts.PushMissing = true
	default:
		return nil, fmt.Errorf("unknown flow %q", flow)
	}

	result, err := s.reconcile.Commit(ctx, outcome, opts)
	if err != nil {
		return nil, err
	}

	// Planning a cooked meal again brings it back onto the planned list.
	if flow == FlowPlan && !meal.Active {
		if err := s.meals.SetActive(ctx, meal.ID, true); err != nil {
			result.Failures = append(result.Failures, models.CommitFailure{
				Name:  "meal",
				Error: err.Error(),
			})
		}
	}

	return result, nil
}

func (s *mealService) getOwned(ctx context.Context, id, householdID primitive.ObjectID) (*models.Meal, error) {
	meal, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal == nil || meal.HouseholdID != householdID {
		return nil, apperrors.NotFound("meal")
	}
	return meal, nil
}
