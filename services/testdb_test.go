package services

import (
	"testing"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Service{},
		&models.ServiceVariant{},
		&models.Employee{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.NotificationSettings{},
		&models.NotificationLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedOrder creates an order in the given status with one pending item per
// service name
func seedOrder(t *testing.T, db *gorm.DB, status string, serviceNames ...string) *models.Order {
	order := models.Order{
		OrderNumber:   GenerateOrderNumber(time.Now()),
		CustomerName:  "Asha Verma",
		CustomerPhone: "+919876543210",
		Status:        status,
		Priority:      models.PriorityMedium,
		Subtotal:      decimal.NewFromInt(500),
		Discount:      decimal.Zero,
		Tax:           decimal.NewFromInt(90),
		ServiceCharge: decimal.NewFromInt(49),
		FinalAmount:   decimal.NewFromInt(639),
	}
	for i, name := range serviceNames {
		order.Items = append(order.Items, models.OrderItem{
			ServiceID:   uint(i + 1),
			ServiceName: name,
			CategoryID:  1,
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(500),
			TotalPrice:  decimal.NewFromInt(500),
			Status:      models.ItemStatusPending,
		})
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return &order
}

// seedEmployee creates an active engineer with the given expertise areas
func seedEmployee(t *testing.T, db *gorm.DB, code, name string, areas ...string) *models.Employee {
	employee := models.Employee{
		EmployeeCode: code,
		Name:         name,
		Phone:        "+919800000000",
		IsActive:     true,
	}
	employee.SetExpertiseList(areas)
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to seed employee: %v", err)
	}
	return &employee
}

// seedCategory creates an active category with the given name and id ordering
func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := models.Category{Name: name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return &category
}

func setItemStatus(t *testing.T, db *gorm.DB, itemID uint, status string) {
	if err := db.Model(&models.OrderItem{}).Where("id = ?", itemID).
		Update("status", status).Error; err != nil {
		t.Fatalf("Failed to set item status: %v", err)
	}
}

func workflowCode(t *testing.T, err error) string {
	t.Helper()
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		t.Fatalf("Expected a workflow error, got %v", err)
	}
	return wfErr.Code
}
