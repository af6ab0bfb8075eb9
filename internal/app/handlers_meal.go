package app

import (
	"net/http"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/services"
	"github.com/gin-gonic/gin"
)

type MealLineRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type CreateMealRequest struct {
	Name  string            `json:"name" binding:"required"`
	Items []MealLineRequest `json:"items"`
}

// PreviewResponse carries a reconciliation preview. When nothing was
// missing the commit already happened and Committed is set.
type PreviewResponse struct {
	Outcome   *models.ReconciliationOutcome `json:"outcome"`
	Committed *models.CommitResult          `json:"committed,omitempty"`
}

func (a *Application) listMeals(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	meals, err := a.meals.List(c.Request.Context(), hid)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list meals")
		return
	}

	successResponse(c, meals)
}

func (a *Application) createMeal(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	lines := make([]models.RequiredLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, models.RequiredLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}

	meal, err := a.meals.Create(c.Request.Context(), hid, req.Name, lines)
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "DATABASE_ERROR", err)
		return
	}

	createdResponse(c, meal)
}

func (a *Application) getMeal(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	meal, items, err := a.meals.GetWithItems(c.Request.Context(), id, hid)
	if err != nil {
		serviceError(c, http.StatusNotFound, "NOT_FOUND", err)
		return
	}

	successResponse(c, gin.H{
		"meal":  meal,
		"items": items,
	})
}

func (a *Application) deleteMeal(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.meals.Delete(c.Request.Context(), id, hid); err != nil {
		serviceError(c, http.StatusNotFound, "NOT_FOUND", err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

func (a *Application) cookPreview(c *gin.Context) {
	a.preview(c, services.FlowCook)
}

func (a *Application) cookCommit(c *gin.Context) {
	a.commit(c, services.FlowCook)
}

func (a *Application) planPreview(c *gin.Context) {
	a.preview(c, services.FlowPlan)
}

func (a *Application) planCommit(c *gin.Context) {
	a.commit(c, services.FlowPlan)
}

func (a *Application) preview(c *gin.Context, flow services.Flow) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	outcome, committed, err := a.meals.Preview(c.Request.Context(), id, hid, flow)
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "PREVIEW_FAILED", err)
		return
	}

	successResponse(c, PreviewResponse{
		Outcome:   outcome,
		Committed: committed,
	})
}

func (a *Application) commit(c *gin.Context, flow services.Flow) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var outcome models.ReconciliationOutcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	result, err := a.meals.Commit(c.Request.Context(), id, hid, &outcome, flow)
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "COMMIT_FAILED", err)
		return
	}

	successResponse(c, result)
}
