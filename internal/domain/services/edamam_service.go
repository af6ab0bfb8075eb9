package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/infrastructure/config"
	"github.com/ak/pantry/internal/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// RecipeIngredient is one structured ingredient of a searched recipe.
type RecipeIngredient struct {
	Text     string  `json:"text"`
	Quantity float64 `json:"quantity"`
	Measure  string  `json:"measure"`
	Food     string  `json:"food"`
}

// Recipe is one recipe returned by the external search.
type Recipe struct {
	Label       string             `json:"label"`
	Image       string             `json:"image"`
	URL         string             `json:"url"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// RequiredLines converts the recipe's structured ingredients into the
// lines the reconciliation engine consumes.
func (r *Recipe) RequiredLines() []models.RequiredLine {
	lines := make([]models.RequiredLine, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		unit := ing.Measure
		// Edamam reports unitless measures as "<unit>".
		if unit == "<unit>" {
			unit = ""
		}
		lines = append(lines, models.RequiredLine{
			Name:     ing.Food,
			Quantity: ing.Quantity,
			Unit:     unit,
		})
	}
	return lines
}

// EdamamService searches the Edamam recipe catalog.
type EdamamService interface {
	Search(ctx context.Context, query string, limit int) ([]Recipe, error)
}

type edamamService struct {
	client *resty.Client
	logger *logger.Logger
}

// NewEdamamService creates a new Edamam client
func NewEdamamService(cfg config.EdamamConfig, log *logger.Logger) EdamamService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("app_id", cfg.AppID).
		SetQueryParam("app_key", cfg.AppKey)

	return &edamamService{
		client: client,
		logger: log.WithComponent("edamam"),
	}
}

type searchResponse struct {
	Hits []struct {
		Recipe Recipe `json:"recipe"`
	} `json:"hits"`
}

func (s *edamamService) Search(ctx context.Context, query string, limit int) ([]Recipe, error) {
	var out searchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"type": "public",
			"q":    query,
			"to":   fmt.Sprintf("%d", limit),
		}).
		SetResult(&out).
		Get("/api/recipes/v2")
	if err != nil {
		return nil, fmt.Errorf("recipe search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe search returned status %d", resp.StatusCode())
	}

	recipes := make([]Recipe, 0, len(out.Hits))
	for _, hit := range out.Hits {
		recipes = append(recipes, hit.Recipe)
	}
	return recipes, nil
}
