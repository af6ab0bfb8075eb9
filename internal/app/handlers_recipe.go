package app

import (
	"net/http"
	"strconv"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/services"
	"github.com/gin-gonic/gin"
)

func (a *Application) searchRecipes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_PARAM", "q is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	recipes, err := a.edamam.Search(c.Request.Context(), query, limit)
	if err != nil {
		errorResponse(c, http.StatusBadGateway, "RECIPE_SEARCH_FAILED", err.Error())
		return
	}

	successResponse(c, recipes)
}

type PlanRecipeRequest struct {
	Recipe services.Recipe `json:"recipe" binding:"required"`
}

type PlanRecipeResponse struct {
	Meal      *models.Meal                  `json:"meal"`
	Outcome   *models.ReconciliationOutcome `json:"outcome"`
	Committed *models.CommitResult          `json:"committed,omitempty"`
}

// planRecipe turns a searched recipe into a planned meal with one
// ingredient line per structured recipe ingredient, then runs the plan
// reconciliation so the caller sees what is missing right away.
func (a *Application) planRecipe(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	var req PlanRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	meal, err := a.meals.Create(c.Request.Context(), hid, req.Recipe.Label, req.Recipe.RequiredLines())
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "DATABASE_ERROR", err)
		return
	}

	outcome, committed, err := a.meals.Preview(c.Request.Context(), meal.ID, hid, services.FlowPlan)
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "RECONCILE_FAILED", err)
		return
	}

	createdResponse(c, PlanRecipeResponse{Meal: meal, Outcome: outcome, Committed: committed})
}

func (a *Application) autocompleteIngredients(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_PARAM", "q is required")
		return
	}

	number, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if number < 1 || number > 25 {
		number = 10
	}

	suggestions, err := a.spoonacular.Autocomplete(c.Request.Context(), query, number)
	if err != nil {
		errorResponse(c, http.StatusBadGateway, "AUTOCOMPLETE_FAILED", err.Error())
		return
	}

	successResponse(c, suggestions)
}
