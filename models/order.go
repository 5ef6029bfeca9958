package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. These values are part of the API contract and must not change.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusScheduled  = "scheduled"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusPostponed  = "postponed"
)

// Order priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Order represents a customer's booking of one or more services
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	// Customer snapshot captured at booking time
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerPhone string `gorm:"not null" json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	HouseNumber   string `json:"house_number"`
	Area          string `json:"area"`
	Landmark      string `json:"landmark"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	ServiceCharge decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"service_charge"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_amount"`

	Status   string `gorm:"not null;default:'pending';index" json:"status"`
	Priority string `gorm:"not null;default:'medium'" json:"priority"`

	CouponCode *string `json:"coupon_code,omitempty"`
	Notes      string  `gorm:"type:text" json:"notes"`
	AdminNotes string  `gorm:"type:text" json:"admin_notes"`
	Rating     *int    `json:"rating"` // 1-5, set by customer after completion
	Review     *string `gorm:"type:text" json:"review"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ComputeFinalAmount returns subtotal - discount + tax + service charge.
// The stored FinalAmount must always equal this value exactly.
func (o *Order) ComputeFinalAmount() decimal.Decimal {
	return o.Subtotal.Sub(o.Discount).Add(o.Tax).Add(o.ServiceCharge)
}

// IsTerminal reports whether the order is in a state that ends the workflow
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// ValidOrderStatuses lists every accepted order status value
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusScheduled,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled,
		OrderStatusPostponed,
	}
}

// ValidPriorities lists every accepted order priority value
func ValidPriorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}
