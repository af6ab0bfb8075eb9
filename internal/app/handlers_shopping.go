package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ShoppingItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (a *Application) activeShoppingList(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	list, items, err := a.shopping.ActiveList(c.Request.Context(), hid)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shopping list")
		return
	}

	successResponse(c, gin.H{
		"list":  list,
		"items": items,
	})
}

func (a *Application) shoppingHistory(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	lists, err := a.shopping.History(c.Request.Context(), hid)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shopping history")
		return
	}

	successResponse(c, lists)
}

func (a *Application) listShoppingItems(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	items, err := a.shopping.ListItems(c.Request.Context(), hid, id)
	if err != nil {
		serviceError(c, http.StatusNotFound, "NOT_FOUND", err)
		return
	}

	successResponse(c, items)
}

func (a *Application) addShoppingItem(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	var req ShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	if err := a.shopping.AddItem(c.Request.Context(), hid, req.Name, req.Quantity, req.Unit); err != nil {
		serviceError(c, http.StatusInternalServerError, "DATABASE_ERROR", err)
		return
	}

	createdResponse(c, gin.H{"added": true})
}

func (a *Application) deleteShoppingItem(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.shopping.DeleteItem(c.Request.Context(), hid, id); err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete item")
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

func (a *Application) archiveShoppingList(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	if err := a.shopping.Archive(c.Request.Context(), hid); err != nil {
		serviceError(c, http.StatusInternalServerError, "ARCHIVE_FAILED", err)
		return
	}

	successResponse(c, gin.H{"archived": true})
}
