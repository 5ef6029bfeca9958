package services

import (
	"testing"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("Failed to seed coupon: %v", err)
	}
	return &coupon
}

func TestValidateCoupon(t *testing.T) {
	db := newTestDB(t)
	expired := time.Now().Add(-time.Hour)

	seedCoupon(t, db, models.Coupon{
		Code: "FLAT50", Type: models.CouponTypeFlat,
		Value: decimal.NewFromInt(50), MinOrderAmount: decimal.NewFromInt(500), IsActive: true,
	})
	seedCoupon(t, db, models.Coupon{
		Code: "OLD", Type: models.CouponTypeFlat,
		Value: decimal.NewFromInt(50), IsActive: true, ExpiresAt: &expired,
	})
	seedCoupon(t, db, models.Coupon{
		Code: "PAUSED", Type: models.CouponTypeFlat,
		Value: decimal.NewFromInt(50), IsActive: false,
	})
	seedCoupon(t, db, models.Coupon{
		Code: "MAXED", Type: models.CouponTypeFlat,
		Value: decimal.NewFromInt(50), IsActive: true, UsageLimit: 2, UsedCount: 2,
	})

	tests := []struct {
		name     string
		code     string
		amount   int64
		wantCode string
	}{
		{"valid", "FLAT50", 600, ""},
		{"case insensitive lookup", "flat50", 600, ""},
		{"whitespace trimmed", "  FLAT50 ", 600, ""},
		{"unknown code", "NOPE", 600, CodeCouponNotFound},
		{"below minimum amount", "FLAT50", 499, CodeCouponInvalid},
		{"expired", "OLD", 600, CodeCouponInvalid},
		{"inactive", "PAUSED", 600, CodeCouponInvalid},
		{"usage limit reached", "MAXED", 600, CodeCouponInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon, err := ValidateCoupon(db, tt.code, decimal.NewFromInt(tt.amount))
			if tt.wantCode == "" {
				assert.NoError(t, err)
				assert.NotNil(t, coupon)
			} else {
				assert.Equal(t, tt.wantCode, workflowCode(t, err))
			}
		})
	}
}

func TestCouponDiscountFor(t *testing.T) {
	flat := models.Coupon{Type: models.CouponTypeFlat, Value: decimal.NewFromInt(75)}
	assert.True(t, flat.DiscountFor(decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(75)))

	percent := models.Coupon{Type: models.CouponTypePercent, Value: decimal.NewFromFloat(12.5)}
	// 12.5% of 333 = 41.625, rounded to 41.63
	assert.Equal(t, "41.63", percent.DiscountFor(decimal.NewFromInt(333)).StringFixed(2))
}
