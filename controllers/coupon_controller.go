package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
	"github.com/shopspring/decimal"
)

// CouponRequest represents the request body for coupon create/update
type CouponRequest struct {
	Code           string          `json:"code" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=flat percent"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	ExpiresAt      *time.Time      `json:"expires_at"`
	UsageLimit     int             `json:"usage_limit"`
	IsActive       *bool           `json:"is_active"`
}

// CreateCoupon handles POST /api/v1/coupons
func CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.Value.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "value cannot be negative")
		return
	}

	coupon := models.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	db := config.GetDB()
	if err := db.Create(&coupon).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			respondError(c, http.StatusConflict, "COUPON_EXISTS", "A coupon with this code already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    coupon,
	})
}

// ListCoupons handles GET /api/v1/coupons
func ListCoupons(c *gin.Context) {
	db := config.GetDB()

	var coupons []models.Coupon
	if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load coupons")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coupons,
	})
}

// UpdateCoupon handles PUT /api/v1/coupons/:id
func UpdateCoupon(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid coupon id")
		return
	}

	var coupon models.Coupon
	if err := db.First(&coupon, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon not found")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	coupon.Type = req.Type
	coupon.Value = req.Value
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.ExpiresAt = req.ExpiresAt
	coupon.UsageLimit = req.UsageLimit
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := db.Save(&coupon).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coupon,
	})
}

// ValidateCouponRequest represents the request body for coupon validation
type ValidateCouponRequest struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// ValidateCoupon handles POST /api/v1/coupons/validate - checks a code
// against an order amount and returns the discount it would grant
func ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	coupon, err := services.ValidateCoupon(db, req.Code, req.OrderAmount)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"coupon":   coupon,
			"discount": coupon.DiscountFor(req.OrderAmount),
		},
	})
}
