package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerName  string                   `json:"customer_name" binding:"required"`
	CustomerPhone string                   `json:"customer_phone" binding:"required"`
	CustomerEmail string                   `json:"customer_email" binding:"omitempty,email"`
	HouseNumber   string                   `json:"house_number"`
	Area          string                   `json:"area"`
	Landmark      string                   `json:"landmark"`
	City          string                   `json:"city"`
	State         string                   `json:"state"`
	Pincode       string                   `json:"pincode"`
	Priority      string                   `json:"priority"`
	Notes         string                   `json:"notes"`
	CouponCode    *string                  `json:"coupon_code"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is one service line in an order creation request
type CreateOrderItemRequest struct {
	ServiceID uint  `json:"service_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrder handles POST /api/v1/orders - books a new order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	input := services.NewOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		HouseNumber:   req.HouseNumber,
		Area:          req.Area,
		Landmark:      req.Landmark,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Priority:      req.Priority,
		Notes:         req.Notes,
		CouponCode:    req.CouponCode,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.NewOrderItemInput{
			ServiceID: item.ServiceID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	db := config.GetDB()
	order, err := services.CreateOrder(db, input)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders with filters and pagination
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("order_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count orders")
		return
	}

	var orders []models.Order
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load orders")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order with its items
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderNotesRequest represents admin-editable order fields outside
// the workflow (notes, priority)
type UpdateOrderNotesRequest struct {
	AdminNotes *string `json:"admin_notes"`
	Priority   *string `json:"priority"`
}

// UpdateOrder handles PUT /api/v1/orders/:id - updates non-workflow fields
func UpdateOrder(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	var req UpdateOrderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	updates := map[string]interface{}{}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if req.Priority != nil {
		if !services.IsValidPriority(*req.Priority) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown priority value")
			return
		}
		updates["priority"] = *req.Priority
	}

	if len(updates) > 0 {
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order")
			return
		}
	}

	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
