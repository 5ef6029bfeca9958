package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/middleware"
	"github.com/homegenie-services/homegenie-api/models"
)

// SyncUserRequest represents the request body for syncing the console account
type SyncUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// SyncUser handles POST /api/v1/users/sync - upserts the admin console
// account for the authenticated Auth0 identity. Called by the console after
// login so the local user row stays in step with Auth0.
func SyncUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not identify the caller")
		return
	}

	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	role := middleware.GetRole(c)
	if role == "" {
		role = "staff"
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		user = models.User{
			Auth0ID: auth0ID,
			Name:    req.Name,
			Email:   strings.ToLower(req.Email),
			Role:    role,
		}
		if err := db.Create(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    user,
		})
		return
	}

	user.Name = req.Name
	user.Email = strings.ToLower(req.Email)
	user.Role = role
	if err := db.Save(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetMe handles GET /api/v1/users/me - returns the caller's console account
func GetMe(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not identify the caller")
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "No account for this identity, call sync first")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
