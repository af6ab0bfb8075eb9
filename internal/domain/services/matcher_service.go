package services

import (
	"context"
	"strings"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/pkg/logger"
	"go.uber.org/zap"
)

// MatchResult resolves a required line to at most one stock item. A nil
// Stock means no tier produced a hit.
type MatchResult struct {
	Stock *models.StockItem
}

// Matched reports whether a stock item was found.
func (m MatchResult) Matched() bool {
	return m.Stock != nil
}

// MatcherService resolves required ingredient lines against a stock
// snapshot through a three-tier cascade: exact name, fuzzy on normalized
// names, then externally suggested substitutes. Each tier runs only when
// the previous one produced nothing; the first hit wins.
type MatcherService interface {
	Match(ctx context.Context, line models.RequiredLine, snapshot []*models.StockItem, idx *StockIndex) MatchResult
}

type matcherService struct {
	substitutes SubstituteSource
	logger      *logger.Logger
}

// NewMatcherService creates a new matcher service
func NewMatcherService(substitutes SubstituteSource, log *logger.Logger) MatcherService {
	return &matcherService{
		substitutes: substitutes,
		logger:      log.WithComponent("matcher"),
	}
}

func (s *matcherService) Match(ctx context.Context, line models.RequiredLine, snapshot []*models.StockItem, idx *StockIndex) MatchResult {
	// Tier 1: exact display name, case-insensitive, no normalization.
	for _, item := range snapshot {
		if strings.EqualFold(item.Name, line.Name) {
			return MatchResult{Stock: item}
		}
	}

	// Tier 2: fuzzy search on the normalized name; only the top-ranked
	// accepted result is consumed.
	if matches := idx.Search(NormalizeName(line.Name)); len(matches) > 0 {
		return MatchResult{Stock: matches[0].Item}
	}

	// Tier 3: substitutes. Lookup failures degrade to an empty candidate
	// list; substitution is strictly best effort.
	candidates, err := s.substitutes.Substitutes(ctx, line.Name)
	if err != nil {
		s.logger.Warn("Substitute lookup failed, skipping substitute tier",
			zap.String("ingredient", line.Name),
			zap.Error(err))
		candidates = nil
	}

	for _, candidate := range candidates {
		normalized := NormalizeName(candidate)
		if item := idx.FindNormalized(normalized); item != nil {
			return MatchResult{Stock: item}
		}
		if matches := idx.Search(normalized); len(matches) > 0 {
			return MatchResult{Stock: matches[0].Item}
		}
	}

	return MatchResult{}
}
