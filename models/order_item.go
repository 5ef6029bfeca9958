package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order item statuses. Part of the API contract.
const (
	ItemStatusPending    = "pending"
	ItemStatusAssigned   = "assigned"
	ItemStatusScheduled  = "scheduled"
	ItemStatusInProgress = "in_progress"
	ItemStatusCompleted  = "completed"
	ItemStatusCancelled  = "cancelled"
)

// OrderItem is a single service line within an order, individually
// assignable to an engineer and schedulable to a visit slot
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	ServiceID   uint    `gorm:"not null" json:"service_id"`
	ServiceName string  `gorm:"not null" json:"service_name"`
	VariantID   *uint   `json:"variant_id,omitempty"`
	VariantName *string `json:"variant_name,omitempty"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"` // drives expertise matching

	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`

	Status string `gorm:"not null;default:'pending';index" json:"status"`

	AssignedEmployeeID   *uint      `gorm:"index" json:"assigned_employee_id"`
	AssignedEmployeeName *string    `json:"assigned_employee_name,omitempty"` // denormalized, kept even if the employee is later deactivated
	AssignedAt           *time.Time `json:"assigned_at,omitempty"`
	AssignmentNotes      *string    `json:"assignment_notes,omitempty"`

	ScheduledDate     *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTimeSlot *string    `json:"scheduled_time_slot,omitempty"` // e.g. "09:00-11:00"

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Rating      *int       `json:"rating"`
	Review      *string    `gorm:"type:text" json:"review"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// IsActive reports whether the item still counts toward an engineer's workload
func (i *OrderItem) IsActive() bool {
	switch i.Status {
	case ItemStatusPending, ItemStatusAssigned, ItemStatusScheduled, ItemStatusInProgress:
		return true
	}
	return false
}

// IsFullyScheduled reports whether the item has both a visit date and a time slot
func (i *OrderItem) IsFullyScheduled() bool {
	return i.ScheduledDate != nil && i.ScheduledTimeSlot != nil
}

// ValidItemStatuses lists every accepted order item status value
func ValidItemStatuses() []string {
	return []string{
		ItemStatusPending,
		ItemStatusAssigned,
		ItemStatusScheduled,
		ItemStatusInProgress,
		ItemStatusCompleted,
		ItemStatusCancelled,
	}
}
