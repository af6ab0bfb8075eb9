package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StockItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (a *Application) listStock(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	items, err := a.stock.List(c.Request.Context(), hid)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list stock")
		return
	}

	successResponse(c, items)
}

func (a *Application) addStock(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	var req StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	item, err := a.stock.AddOrMerge(c.Request.Context(), hid, req.Name, req.Quantity, req.Unit)
	if err != nil {
		serviceError(c, http.StatusInternalServerError, "DATABASE_ERROR", err)
		return
	}

	createdResponse(c, item)
}

func (a *Application) updateStock(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	item, err := a.stock.Update(c.Request.Context(), hid, id, req.Name, req.Quantity, req.Unit)
	if err != nil {
		serviceError(c, http.StatusNotFound, "NOT_FOUND", err)
		return
	}

	successResponse(c, item)
}

func (a *Application) deleteStock(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.stock.Delete(c.Request.Context(), hid, id); err != nil {
		serviceError(c, http.StatusNotFound, "NOT_FOUND", err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}
