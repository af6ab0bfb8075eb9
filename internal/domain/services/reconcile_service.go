package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CommitOptions controls what happens after the stock deductions of a
// commit. Cooking a meal marks it inactive; the planning flows instead push
// every missing line onto the household's active shopping list.
type CommitOptions struct {
	MealID      primitive.ObjectID
	MarkCooked  bool
	PushMissing bool
}

// ReconcileService exposes the two-phase reconciliation protocol: Preview
// computes what would happen without touching stock, Commit applies the
// mutations of a confirmed preview.
type ReconcileService interface {
	Preview(ctx context.Context, householdID primitive.ObjectID, lines []models.RequiredLine) (*models.ReconciliationOutcome, error)
	Commit(ctx context.Context, outcome *models.ReconciliationOutcome, opts CommitOptions) (*models.CommitResult, error)
}

type reconcileService struct {
	stock    repositories.StockRepository
	meals    repositories.MealRepository
	shopping repositories.ShoppingListRepository
	matcher  MatcherService
	units    *UnitBridge
	logger   *logger.Logger
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(
	stock repositories.StockRepository,
	meals repositories.MealRepository,
	shopping repositories.ShoppingListRepository,
	matcher MatcherService,
	units *UnitBridge,
	log *logger.Logger,
) ReconcileService {
	return &reconcileService{
		stock:    stock,
		meals:    meals,
		shopping: shopping,
		matcher:  matcher,
		units:    units,
		logger:   log.WithComponent("reconcile"),
	}
}

// lineResult is the reconciliation of a single required line: exactly one
// of matched/missing is set.
type lineResult struct {
	matched *models.MatchedLine
	missing *models.MissingLine
}

// Preview matches and reconciles every required line against a stock
// snapshot taken once at batch start. Lines are processed concurrently;
// each task only writes its own slot, and aggregation follows input order,
// so the outcome is independent of task completion order. Nothing is
// mutated; a stock listing failure aborts the whole preview.
func (s *reconcileService) Preview(ctx context.Context, householdID primitive.ObjectID, lines []models.RequiredLine) (*models.ReconciliationOutcome, error) {
	snapshot, err := s.stock.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	// One index per batch, shared read-only by all matching tasks.
	idx := NewStockIndex(snapshot)

	results := make([]lineResult, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line models.RequiredLine) {
			defer wg.Done()
			match := s.matcher.Match(ctx, line, snapshot, idx)
			results[i] = s.reconcile(ctx, line, match)
		}(i, line)
	}
	wg.Wait()

	outcome := &models.ReconciliationOutcome{
		HouseholdID: householdID,
		Matched:     []models.MatchedLine{},
		Missing:     []models.MissingLine{},
	}
	for _, r := range results {
		if r.matched != nil {
			outcome.Matched = append(outcome.Matched, *r.matched)
		} else {
			outcome.Missing = append(outcome.Missing, *r.missing)
		}
	}

	s.logger.Info("Reconciliation preview computed",
		zap.String("household_id", householdID.Hex()),
		zap.Int("lines", len(lines)),
		zap.Int("matched", len(outcome.Matched)),
		zap.Int("missing", len(outcome.Missing)))

	return outcome, nil
}

// reconcile turns one match result into a matched or missing line. Each
// line compares against the snapshot quantity: sibling lines matching the
// same stock item do not see each other's claim, so a batch can
// over-allocate a shared item. The preview the user confirms shows exactly
// that.
func (s *reconcileService) reconcile(ctx context.Context, line models.RequiredLine, match MatchResult) lineResult {
	if !match.Matched() {
		return lineResult{missing: &models.MissingLine{
			Name:      line.Name,
			Needed:    line.Quantity,
			Available: 0,
			Unit:      line.Unit,
		}}
	}

	stock := match.Stock
	converted := s.units.Convert(ctx, line.Quantity, line.Unit, stock.Unit, line.Name)

	if stock.Quantity >= converted {
		return lineResult{matched: &models.MatchedLine{
			Line:     line,
			Stock:    stock,
			Quantity: converted,
			Unit:     stock.Unit,
		}}
	}

	// Insufficient stock: the whole line goes to missing and the partial
	// quantity is consumed at commit time.
	return lineResult{missing: &models.MissingLine{
		Name:      line.Name,
		Needed:    converted,
		Available: stock.Quantity,
		Unit:      stock.Unit,
		Stock:     stock,
	}}
}

// Commit applies a confirmed outcome. Deductions run sequentially, one
// line at a time, so two lines never race on the same stock item within a
// batch. Failures are collected per line and do not stop the batch;
// already-applied deductions are not rolled back.
func (s *reconcileService) Commit(ctx context.Context, outcome *models.ReconciliationOutcome, opts CommitOptions) (*models.CommitResult, error) {
	result := &models.CommitResult{
		Committed: []models.MatchedLine{},
		Failures:  []models.CommitFailure{},
	}

	for _, m := range outcome.Matched {
		if err := s.stock.DeductOrDelete(ctx, m.Stock, m.Quantity); err != nil {
			s.logger.Error("Stock deduction failed",
				zap.String("item", m.Stock.Name),
				zap.Error(err))
			result.Failures = append(result.Failures, models.CommitFailure{
				Name:  m.Line.Name,
				Error: err.Error(),
			})
			continue
		}
		result.Committed = append(result.Committed, m)
	}

	// Partially covering stock items are fully consumed.
	for _, miss := range outcome.Missing {
		if miss.Stock == nil {
			continue
		}
		if err := s.stock.DeductOrDelete(ctx, miss.Stock, miss.Stock.Quantity); err != nil {
			s.logger.Error("Partial stock consumption failed",
				zap.String("item", miss.Stock.Name),
				zap.Error(err))
			result.Failures = append(result.Failures, models.CommitFailure{
				Name:  miss.Name,
				Error: err.Error(),
			})
		}
	}

	if opts.PushMissing && len(outcome.Missing) > 0 {
		s.pushMissing(ctx, outcome, result)
	}

	if opts.MarkCooked && !opts.MealID.IsZero() {
		if err := s.meals.SetActive(ctx, opts.MealID, false); err != nil {
			s.logger.Error("Failed to mark meal cooked",
				zap.String("meal_id", opts.MealID.Hex()),
				zap.Error(err))
			result.Failures = append(result.Failures, models.CommitFailure{
				Name:  "meal",
				Error: err.Error(),
			})
		}
	}

	s.logger.Info("Reconciliation committed",
		zap.String("household_id", outcome.HouseholdID.Hex()),
		zap.Int("committed", len(result.Committed)),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// pushMissing upserts every missing line's residual quantity onto the
// household's active shopping list, creating the list if none exists and
// merging lines by name.
func (s *reconcileService) pushMissing(ctx context.Context, outcome *models.ReconciliationOutcome, result *models.CommitResult) {
	list, err := s.shopping.GetOrCreateActive(ctx, outcome.HouseholdID)
	if err != nil {
		s.logger.Error("Failed to get active shopping list", zap.Error(err))
		result.Failures = append(result.Failures, models.CommitFailure{
			Name:  "shopping list",
			Error: err.Error(),
		})
		return
	}

	for _, miss := range outcome.Missing {
		if err := s.shopping.UpsertItem(ctx, list.ID, miss.Name, miss.Residual(), miss.Unit); err != nil {
			s.logger.Error("Failed to upsert shopping list item",
				zap.String("item", miss.Name),
				zap.Error(err))
			result.Failures = append(result.Failures, models.CommitFailure{
				Name:  miss.Name,
				Error: err.Error(),
			})
		}
	}
}
