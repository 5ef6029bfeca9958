package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups services by the kind of work involved (Plumbing,
// Electrical, ...). Its name doubles as the expertise label used for
// engineer matching.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ImageS3Key  *string `json:"image_s3_key,omitempty"`
	ImageURL    *string `gorm:"-" json:"image_url,omitempty"` // computed, presigned URL
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`

	Services []Service `gorm:"foreignKey:CategoryID" json:"services,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Service is a bookable offering within a category
type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID" json:"-"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	ImageS3Key  *string         `json:"image_s3_key,omitempty"`
	ImageURL    *string         `gorm:"-" json:"image_url,omitempty"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`

	Variants []ServiceVariant `gorm:"foreignKey:ServiceID" json:"variants,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceVariant is a priced variation of a service (e.g. "2 BHK" deep clean)
type ServiceVariant struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ServiceID uint            `gorm:"not null;index" json:"service_id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ServiceVariant model
func (ServiceVariant) TableName() string {
	return "service_variants"
}
