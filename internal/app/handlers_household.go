package app

import (
	"net/http"

	"github.com/ak/pantry/internal/app/middleware"
	"github.com/ak/pantry/internal/domain/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (a *Application) register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	user, err := a.households.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(c, http.StatusConflict, "REGISTRATION_FAILED", err)
		return
	}

	token, err := middleware.GenerateToken(a.jwtConfig, user.HouseholdID.Hex(), user.ID.Hex(), user.Username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	createdResponse(c, AuthResponse{Token: token, User: user})
}

func (a *Application) login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	user, err := a.households.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		return
	}

	token, err := middleware.GenerateToken(a.jwtConfig, user.HouseholdID.Hex(), user.ID.Hex(), user.Username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	successResponse(c, AuthResponse{Token: token, User: user})
}

func (a *Application) currentUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		errorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token claims")
		return
	}

	successResponse(c, gin.H{
		"user_id":      claims.UserID,
		"username":     claims.Username,
		"household_id": claims.HouseholdID,
	})
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

func (a *Application) updateUsername(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	user, err := a.households.UpdateUsername(c.Request.Context(), uid, req.Username)
	if err != nil {
		serviceError(c, http.StatusConflict, "UPDATE_FAILED", err)
		return
	}

	successResponse(c, user)
}

type JoinHouseholdRequest struct {
	HouseholdID string `json:"household_id" binding:"required"`
}

func (a *Application) joinHousehold(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req JoinHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	hid, err := primitive.ObjectIDFromHex(req.HouseholdID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid household_id format")
		return
	}

	user, err := a.households.JoinHousehold(c.Request.Context(), uid, hid)
	if err != nil {
		serviceError(c, http.StatusNotFound, "JOIN_FAILED", err)
		return
	}

	// The old token still carries the previous household; issue a fresh one.
	token, err := middleware.GenerateToken(a.jwtConfig, user.HouseholdID.Hex(), user.ID.Hex(), user.Username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	successResponse(c, AuthResponse{Token: token, User: user})
}

func (a *Application) listMembers(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	members, err := a.households.Members(c.Request.Context(), hid)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list members")
		return
	}

	successResponse(c, members)
}
