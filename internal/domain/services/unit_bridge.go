package services

import (
	"context"
	"strings"

	"github.com/ak/pantry/internal/pkg/logger"
	"go.uber.org/zap"
)

// UnitBridge converts required quantities into stock units through an
// external converter. Conversion is strictly best effort: a missing unit on
// either side or a converter failure yields the original amount unchanged,
// degrading accuracy but never aborting reconciliation.
type UnitBridge struct {
	converter UnitConverter
	logger    *logger.Logger
}

// NewUnitBridge creates a new unit bridge
func NewUnitBridge(converter UnitConverter, log *logger.Logger) *UnitBridge {
	return &UnitBridge{
		converter: converter,
		logger:    log.WithComponent("unit-bridge"),
	}
}

// Convert converts amount from fromUnit to toUnit for the named ingredient.
func (b *UnitBridge) Convert(ctx context.Context, amount float64, fromUnit, toUnit, ingredientName string) float64 {
	from := strings.TrimSpace(fromUnit)
	to := strings.TrimSpace(toUnit)

	// Without a unit on both sides there is nothing to convert.
	if from == "" || to == "" {
		return amount
	}
	if strings.EqualFold(from, to) {
		return amount
	}

	converted, err := b.converter.Convert(ctx, amount, from, to, ingredientName)
	if err != nil {
		b.logger.Warn("Unit conversion failed, using original amount",
			zap.String("ingredient", ingredientName),
			zap.String("from", from),
			zap.String("to", to),
			zap.Float64("amount", amount),
			zap.Error(err))
		return amount
	}
	return converted
}
