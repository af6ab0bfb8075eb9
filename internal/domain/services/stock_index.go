package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ak/pantry/internal/domain/models"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// matchThreshold is the minimum similarity score a fuzzy result needs to be
// usable. Moderately strict: a false positive only pollutes the preview the
// user reviews before commit, a false negative sends an owned ingredient to
// the shopping list.
const matchThreshold = 0.6

// StockMatch is one scored fuzzy search result.
type StockMatch struct {
	Item  *models.StockItem
	Score float64
}

// StockIndex holds a stock snapshot keyed by normalized display name. It is
// built once per reconciliation batch and shared read-only across the
// concurrently matching lines; it must not be mutated mid-batch.
type StockIndex struct {
	items      []*models.StockItem
	normalized []string
}

// NewStockIndex indexes a stock snapshot for fuzzy lookup.
func NewStockIndex(snapshot []*models.StockItem) *StockIndex {
	idx := &StockIndex{
		items:      snapshot,
		normalized: make([]string, len(snapshot)),
	}
	for i, item := range snapshot {
		idx.normalized[i] = NormalizeName(item.Name)
	}
	return idx
}

// FindNormalized returns the first stock item whose normalized name equals
// the already-normalized query exactly, or nil.
func (idx *StockIndex) FindNormalized(query string) *models.StockItem {
	for i, name := range idx.normalized {
		if name == query {
			return idx.items[i]
		}
	}
	return nil
}

// Search returns stock items approximately matching the normalized query,
// best first. Only results at or above the acceptance threshold are
// returned; callers consume the top-ranked one.
func (idx *StockIndex) Search(query string) []StockMatch {
	if query == "" {
		return nil
	}

	var results []StockMatch
	for i, name := range idx.normalized {
		if s := scoreMatch(query, name); s >= matchThreshold {
			results = append(results, StockMatch{Item: idx.items[i], Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scoreMatch scores how well query matches target, both normalized.
// Returns a similarity in [0,1].
func scoreMatch(query, target string) float64 {
	if query == "" || target == "" {
		return 0
	}
	if query == target {
		return 1
	}

	best := similarity(query, target)

	// A query matching a single word of a multi-word name is still a decent
	// hit: "onion" should find "red onion".
	for _, w := range strings.Fields(target) {
		if s := similarity(query, w) * 0.9; s > best {
			best = s
		}
	}

	// Subsequence containment ("chick" inside "chicken breast") counts in
	// proportion to how much of the target the query covers.
	if fuzzy.MatchNormalizedFold(query, target) {
		if s := float64(len(query)) / float64(len(target)); s > best {
			best = s
		}
	}

	return best
}

// similarity returns a 0.0-1.0 confidence score between two strings using
// Levenshtein distance: 1.0 - distance/max(len(a), len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
