package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateCoupon(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.POST("/api/v1/coupons", CreateCoupon)

	w := performRequest(router, http.MethodPost, "/api/v1/coupons", gin.H{
		"code":  "welcome10",
		"type":  "percent",
		"value": "10",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var coupon models.Coupon
	assert.NoError(t, db.First(&coupon).Error)
	assert.Equal(t, "WELCOME10", coupon.Code, "codes are stored uppercased")
	assert.True(t, coupon.IsActive)

	// Duplicate code
	w = performRequest(router, http.MethodPost, "/api/v1/coupons", gin.H{
		"code":  "WELCOME10",
		"type":  "flat",
		"value": "50",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "COUPON_EXISTS", errorCode(t, w))

	// Unknown type fails binding
	w = performRequest(router, http.MethodPost, "/api/v1/coupons", gin.H{
		"code":  "BOGUS",
		"type":  "bogo",
		"value": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateCouponEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/api/v1/coupons/validate", ValidateCoupon)

	coupon := models.Coupon{
		Code:           "FLAT50",
		Type:           models.CouponTypeFlat,
		Value:          decimal.NewFromInt(50),
		MinOrderAmount: decimal.NewFromInt(500),
		IsActive:       true,
	}
	assert.NoError(t, db.Create(&coupon).Error)

	w := performRequest(router, http.MethodPost, "/api/v1/coupons/validate", gin.H{
		"code":         "flat50",
		"order_amount": "600",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "50", data["discount"])

	w = performRequest(router, http.MethodPost, "/api/v1/coupons/validate", gin.H{
		"code":         "FLAT50",
		"order_amount": "400",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "COUPON_INVALID", errorCode(t, w))

	w = performRequest(router, http.MethodPost, "/api/v1/coupons/validate", gin.H{
		"code":         "NOPE",
		"order_amount": "600",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "COUPON_NOT_FOUND", errorCode(t, w))
}
