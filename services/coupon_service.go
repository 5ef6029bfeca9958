package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValidateCoupon looks up a coupon code and checks it against the order
// amount: the coupon must be active, unexpired, within its usage limit, and
// the amount must meet its minimum.
func ValidateCoupon(db *gorm.DB, code string, orderAmount decimal.Decimal) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.Where("upper(code) = ?", strings.ToUpper(strings.TrimSpace(code))).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeCouponNotFound, "Coupon code not found")
		}
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}

	if !coupon.IsActive {
		return nil, NewValidationError(CodeCouponInvalid, "Coupon is no longer active")
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, NewValidationError(CodeCouponInvalid, "Coupon has expired")
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, NewValidationError(CodeCouponInvalid, "Coupon usage limit reached")
	}
	if orderAmount.LessThan(coupon.MinOrderAmount) {
		return nil, NewValidationError(CodeCouponInvalid,
			fmt.Sprintf("Order amount must be at least %s to use this coupon", coupon.MinOrderAmount.StringFixed(2)))
	}

	return &coupon, nil
}
