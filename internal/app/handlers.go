package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/ak/pantry/internal/app/middleware"
	apperrors "github.com/ak/pantry/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIResponse is the standard API response format
type APIResponse struct {
	Success   bool                `json:"success"`
	Data      interface{}         `json:"data,omitempty"`
	Error     *apperrors.APIError `json:"error,omitempty"`
	Timestamp string              `json:"timestamp"`
}

func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Success:   false,
		Error:     apperrors.New(apperrors.ErrorCode(code), message, status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// serviceError renders an error coming out of the service layer. Typed
// errors carry their own code and status; anything else falls back to the
// given defaults.
func serviceError(c *gin.Context, status int, code string, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.HTTPStatus, APIResponse{
			Success:   false,
			Error:     apiErr,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	errorResponse(c, status, code, err.Error())
}

func getObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	idStr := c.Param(param)
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// householdID resolves the authenticated household from the token claims.
func householdID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.GetHouseholdID(c))
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid household in token")
		return primitive.NilObjectID, false
	}
	return id, true
}

func userID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user in token")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Health and info endpoints

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	if err := a.mongodb.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"reason":    "database unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Application) apiInfo(c *gin.Context) {
	successResponse(c, gin.H{
		"name":        "Pantry",
		"version":     "0.1.0",
		"description": "Household stock, meal planning and shopping list service",
	})
}
