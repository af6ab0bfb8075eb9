package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ak/pantry/internal/infrastructure/config"
	"github.com/ak/pantry/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// SubstituteSource provides candidate substitute names for an ingredient.
// Lookups are network-bound and may fail; callers treat failure as "no
// substitutes" rather than aborting.
type SubstituteSource interface {
	Substitutes(ctx context.Context, ingredientName string) ([]string, error)
}

// UnitConverter converts an amount between units for a named ingredient.
type UnitConverter interface {
	Convert(ctx context.Context, amount float64, fromUnit, toUnit, ingredientName string) (float64, error)
}

// IngredientSuggestion is one ingredient autocomplete result.
type IngredientSuggestion struct {
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	PossibleUnits []string `json:"possibleUnits"`
}

// SpoonacularService wraps the Spoonacular food API: ingredient
// substitutes, unit conversion and ingredient autocomplete.
type SpoonacularService interface {
	SubstituteSource
	UnitConverter
	Autocomplete(ctx context.Context, query string, number int) ([]IngredientSuggestion, error)
}

type spoonacularService struct {
	client *resty.Client
	logger *logger.Logger
}

// NewSpoonacularService creates a new Spoonacular client
func NewSpoonacularService(cfg config.SpoonacularConfig, log *logger.Logger) SpoonacularService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("apiKey", cfg.APIKey)

	return &spoonacularService{
		client: client,
		logger: log.WithComponent("spoonacular"),
	}
}

type substitutesResponse struct {
	Status      string   `json:"status"`
	Substitutes []string `json:"substitutes"`
	Message     string   `json:"message"`
}

func (s *spoonacularService) Substitutes(ctx context.Context, ingredientName string) ([]string, error) {
	var out substitutesResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("ingredientName", ingredientName).
		SetResult(&out).
		Get("/food/ingredients/substitutes")
	if err != nil {
		return nil, fmt.Errorf("substitute lookup failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("substitute lookup returned status %d", resp.StatusCode())
	}

	var candidates []string
	for _, raw := range out.Substitutes {
		candidates = append(candidates, parseSubstitute(raw)...)
	}
	return candidates, nil
}

type convertResponse struct {
	TargetAmount *float64 `json:"targetAmount"`
	TargetUnit   string   `json:"targetUnit"`
	Answer       string   `json:"answer"`
}

func (s *spoonacularService) Convert(ctx context.Context, amount float64, fromUnit, toUnit, ingredientName string) (float64, error) {
	var out convertResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredientName": ingredientName,
			"sourceAmount":   fmt.Sprintf("%g", amount),
			"sourceUnit":     fromUnit,
			"targetUnit":     toUnit,
		}).
		SetResult(&out).
		Get("/recipes/convert")
	if err != nil {
		return 0, fmt.Errorf("unit conversion failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unit conversion returned status %d", resp.StatusCode())
	}
	if out.TargetAmount == nil {
		return 0, fmt.Errorf("unit conversion returned no target amount")
	}
	return *out.TargetAmount, nil
}

func (s *spoonacularService) Autocomplete(ctx context.Context, query string, number int) ([]IngredientSuggestion, error) {
	var out []IngredientSuggestion
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":           query,
			"number":          fmt.Sprintf("%d", number),
			"metaInformation": "true",
		}).
		SetResult(&out).
		Get("/food/ingredients/autocomplete")
	if err != nil {
		return nil, fmt.Errorf("ingredient autocomplete failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ingredient autocomplete returned status %d", resp.StatusCode())
	}
	return out, nil
}

// Measurement words that may prefix a substitute suggestion together with a
// number, as in "1 cup of margarine".
var measureWords = map[string]bool{
	"cup": true, "cups": true,
	"tablespoon": true, "tablespoons": true, "tbsp": true,
	"teaspoon": true, "teaspoons": true, "tsp": true,
	"ounce": true, "ounces": true, "oz": true,
	"gram": true, "grams": true, "g": true, "kg": true,
	"ml": true, "l": true, "liter": true, "liters": true,
	"pound": true, "pounds": true, "lb": true, "lbs": true,
	"pinch": true, "stick": true, "sticks": true,
	"clove": true, "cloves": true,
}

// parseSubstitute turns one raw suggestion string into plain candidate
// names. Suggestions come in forms like
// "1 cup = 1 cup soy margarine" or
// "1 cup = 7/8 cup vegetable oil plus 1/2 teaspoon salt";
// the quantity side of "=" is dropped, combinations are split on "plus",
// and leading quantity/unit tokens are stripped from each part.
func parseSubstitute(raw string) []string {
	if idx := strings.Index(raw, "="); idx >= 0 {
		raw = raw[idx+1:]
	}

	raw = strings.ReplaceAll(raw, " + ", " plus ")
	parts := strings.Split(raw, " plus ")

	var names []string
	for _, part := range parts {
		if name := stripQuantityPrefix(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// stripQuantityPrefix drops leading number, measure and "of" tokens:
// "7/8 cup of vegetable oil" -> "vegetable oil".
func stripQuantityPrefix(s string) string {
	fields := strings.Fields(s)
	i := 0
	for i < len(fields) {
		f := strings.ToLower(strings.Trim(fields[i], ".,"))
		if f == "of" || measureWords[f] || startsWithDigit(f) {
			i++
			continue
		}
		break
	}
	return strings.Join(fields[i:], " ")
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
