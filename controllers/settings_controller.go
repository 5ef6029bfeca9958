package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
)

// GetNotificationSettings handles GET /api/v1/settings/notifications -
// returns the configuration rows for both channels
func GetNotificationSettings(c *gin.Context) {
	db := config.GetDB()

	var settings []models.NotificationSettings
	if err := db.Order("channel").Find(&settings).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// NotificationSettingsRequest represents the request body for updating one channel
type NotificationSettingsRequest struct {
	Enabled                *bool   `json:"enabled"`
	SenderID               *string `json:"sender_id"`
	NotifyOrderConfirmed   *bool   `json:"notify_order_confirmed"`
	NotifyEngineerAssigned *bool   `json:"notify_engineer_assigned"`
	NotifyVisitReminder    *bool   `json:"notify_visit_reminder"`
	NotifyOrderCompleted   *bool   `json:"notify_order_completed"`
}

// UpdateNotificationSettings handles PUT /api/v1/settings/notifications/:channel -
// upserts the settings row for the sms or email channel
func UpdateNotificationSettings(c *gin.Context) {
	channel := c.Param("channel")
	if channel != models.ChannelSMS && channel != models.ChannelEmail {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Channel must be sms or email")
		return
	}

	var req NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var settings models.NotificationSettings
	if err := db.Where("channel = ?", channel).First(&settings).Error; err != nil {
		settings = models.NotificationSettings{
			Channel:                channel,
			NotifyOrderConfirmed:   true,
			NotifyEngineerAssigned: true,
			NotifyVisitReminder:    true,
			NotifyOrderCompleted:   true,
		}
	}

	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	if req.SenderID != nil {
		settings.SenderID = *req.SenderID
	}
	if req.NotifyOrderConfirmed != nil {
		settings.NotifyOrderConfirmed = *req.NotifyOrderConfirmed
	}
	if req.NotifyEngineerAssigned != nil {
		settings.NotifyEngineerAssigned = *req.NotifyEngineerAssigned
	}
	if req.NotifyVisitReminder != nil {
		settings.NotifyVisitReminder = *req.NotifyVisitReminder
	}
	if req.NotifyOrderCompleted != nil {
		settings.NotifyOrderCompleted = *req.NotifyOrderCompleted
	}

	if err := db.Save(&settings).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// ListNotificationLogs handles GET /api/v1/orders/:id/notifications - the
// delivery history for one order
func ListNotificationLogs(c *gin.Context) {
	db := config.GetDB()

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var logs []models.NotificationLog
	if err := db.Where("order_id = ?", orderID).Order("sent_at DESC").Find(&logs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load notification logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
	})
}
