package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
)

// UpdateOrderStatusRequest represents the request body for an order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order
// through the workflow, applying cascade rules to its items
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	order, err := services.TransitionOrder(db, uint(orderID), req.Status, req.Reason)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderItemRequest represents the request body for an item update.
// scheduled_date uses the YYYY-MM-DD wire format.
type UpdateOrderItemRequest struct {
	Status            *string `json:"status"`
	Notes             *string `json:"notes"`
	ScheduledDate     *string `json:"scheduled_date"`
	ScheduledTimeSlot *string `json:"scheduled_time_slot"`
	Rating            *int    `json:"rating"`
	Review            *string `json:"review"`
}

// UpdateOrderItem handles PATCH /api/v1/orders/:id/items/:itemId - updates an
// item's status, schedule and notes
func UpdateOrderItem(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item id")
		return
	}

	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	input := services.ItemUpdateInput{
		Status: req.Status,
		Notes:  req.Notes,
		Rating: req.Rating,
		Review: req.Review,
	}
	if req.ScheduledDate != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.ScheduledDate, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "scheduled_date must be YYYY-MM-DD")
			return
		}
		input.ScheduledDate = &date
	}
	input.ScheduledTimeSlot = req.ScheduledTimeSlot

	db := config.GetDB()
	result, err := services.UpdateOrderItem(db, uint(orderID), uint(itemID), input)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"data":    result.Item,
	}
	if result.TimeSlotCleared {
		// The date change invalidated the previously chosen slot; the admin
		// UI prompts for re-selection.
		body["time_slot_cleared"] = true
	}
	c.JSON(http.StatusOK, body)
}

// AssignEmployeeRequest represents the request body for an engineer assignment
type AssignEmployeeRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Notes      string `json:"notes"`
}

// AssignEmployee handles POST /api/v1/orders/:id/items/:itemId/assign -
// assigns an engineer to an item and advances the item to assigned
func AssignEmployee(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item id")
		return
	}

	var req AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	item, err := services.AssignAndProgress(db, uint(orderID), uint(itemID), req.EmployeeID, req.Notes)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// AutoAssignOrder handles POST /api/v1/orders/:id/auto-assign - assigns the
// least-loaded eligible engineer to every unassigned item
func AutoAssignOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	db := config.GetDB()
	order, err := services.AutoAssignOrder(db, uint(orderID))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetAssignmentCandidates handles GET /api/v1/orders/:id/items/:itemId/candidates -
// lists the active engineers whose expertise covers the item's category.
// The list is advisory; assignment accepts any active engineer.
func GetAssignmentCandidates(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item id")
		return
	}

	db := config.GetDB()
	var item models.OrderItem
	if err := db.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Order item not found")
		return
	}

	candidates, err := services.EligibleEmployeesForItem(db, &item)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load candidates")
		return
	}
	if candidates == nil {
		candidates = []models.Employee{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    candidates,
	})
}

// GetTimeSlots handles GET /api/v1/time-slots - returns the bookable slots
// for a given date (defaults to today)
func GetTimeSlots(c *gin.Context) {
	now := time.Now()
	date := now
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.ValidSlotsFor(date, now),
	})
}
