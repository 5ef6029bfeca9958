package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypeFlat    = "flat"
	CouponTypePercent = "percent"
)

// Coupon is an admin-managed discount code applied at order creation
type Coupon struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;not null" json:"code"`
	Type           string          `gorm:"not null" json:"type"` // flat or percent
	Value          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"min_order_amount"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	UsageLimit     int             `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount      int             `gorm:"not null;default:0" json:"used_count"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}

// DiscountFor returns the discount this coupon grants on the given amount.
// Percent coupons round to 2 decimal places.
func (c *Coupon) DiscountFor(amount decimal.Decimal) decimal.Decimal {
	if c.Type == CouponTypePercent {
		return amount.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	}
	return c.Value
}
