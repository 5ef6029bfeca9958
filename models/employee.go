package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Employee represents a field engineer who can be assigned to order items
type Employee struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	EmployeeCode string `gorm:"uniqueIndex;not null" json:"employee_code"`
	Name         string `gorm:"not null" json:"name"`
	Manager      string `json:"manager"`
	Phone        string `gorm:"not null" json:"phone"`
	Email        string `json:"email"`

	// Comma-joined list of expertise category labels, e.g. "Plumbing,Electrical".
	// Use ExpertiseList/SetExpertiseList rather than touching this directly.
	ExpertiseAreas string `gorm:"not null;default:''" json:"-"`

	// Derived JSON views of ExpertiseAreas, populated by AfterFind.
	// Expert carries the first area for older admin clients that still
	// expect a single expertise value.
	Expertise []string `gorm:"-" json:"expertise_areas"`
	Expert    string   `gorm:"-" json:"expert"`

	// Deactivation is a soft flag: inactive employees are excluded from
	// assignment candidate pools but stay resolvable in historical records.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// ExpertiseList returns the employee's expertise areas as a slice
func (e *Employee) ExpertiseList() []string {
	if e.ExpertiseAreas == "" {
		return nil
	}
	parts := strings.Split(e.ExpertiseAreas, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SetExpertiseList replaces the employee's expertise areas
func (e *Employee) SetExpertiseList(areas []string) {
	cleaned := make([]string, 0, len(areas))
	for _, a := range areas {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	e.ExpertiseAreas = strings.Join(cleaned, ",")
	e.Expertise = cleaned
	e.Expert = e.PrimaryExpertise()
}

// AfterFind populates the derived expertise fields after a load
func (e *Employee) AfterFind(tx *gorm.DB) error {
	e.Expertise = e.ExpertiseList()
	e.Expert = e.PrimaryExpertise()
	return nil
}

// HasExpertise reports whether the employee covers the given expertise area
func (e *Employee) HasExpertise(area string) bool {
	for _, a := range e.ExpertiseList() {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}

// PrimaryExpertise returns the first expertise area, matching the legacy
// single-value "expert" field exposed by older admin clients
func (e *Employee) PrimaryExpertise() string {
	list := e.ExpertiseList()
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
