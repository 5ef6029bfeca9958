package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"gorm.io/gorm"
)

// categoryExpertise maps category names to the canonical expertise-area
// label engineers are tagged with. Most categories map to themselves; the
// entries that differ exist because several categories share one trade.
var categoryExpertise = map[string]string{
	"Plumbing":         "Plumbing",
	"Electrical":       "Electrical",
	"Carpentry":        "Carpentry",
	"Painting":         "Painting",
	"Cleaning":         "Cleaning",
	"Pest Control":     "Pest Control",
	"Appliance Repair": "Appliance Repair",
	"AC Service":       "Appliance Repair",
	"Geyser Repair":    "Appliance Repair",
	"Deep Cleaning":    "Cleaning",
}

// ExpertiseForCategory returns the expertise label for a category name.
// Unknown categories have no mapping and yield no eligible engineers.
func ExpertiseForCategory(categoryName string) (string, bool) {
	label, ok := categoryExpertise[categoryName]
	return label, ok
}

// EligibleEmployees filters the given roster down to active employees whose
// expertise covers the category. The result preserves roster order. The
// output is advisory: callers may still assign outside it.
func EligibleEmployees(categoryName string, employees []models.Employee) []models.Employee {
	label, ok := ExpertiseForCategory(categoryName)
	if !ok {
		return nil
	}
	var eligible []models.Employee
	for _, e := range employees {
		if e.IsActive && e.HasExpertise(label) {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// EligibleEmployeesForItem resolves an item's category and returns the
// eligible active engineers for it
func EligibleEmployeesForItem(db *gorm.DB, item *models.OrderItem) ([]models.Employee, error) {
	var category models.Category
	if err := db.First(&category, item.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	var roster []models.Employee
	if err := db.Where("is_active = ?", true).Order("id").Find(&roster).Error; err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	return EligibleEmployees(category.Name, roster), nil
}

// Assign records an engineer assignment on an order item. It does not touch
// the item's status; that transition is a separate explicit step so
// assignment and status changes stay independently auditable. Expertise
// match is advisory only and is not enforced here.
func Assign(db *gorm.DB, orderID, itemID, employeeID uint, note string) (*models.OrderItem, error) {
	unlock := lockOrder(orderID)
	defer unlock()
	return assignLocked(db, orderID, itemID, employeeID, note)
}

// AssignAndProgress assigns an engineer and chains the workflow steps an
// administrator expects from the single assign action: a pending item
// advances to assigned, and order-level auto-progression is re-evaluated.
// The whole chain runs under one acquisition of the order lock.
func AssignAndProgress(db *gorm.DB, orderID, itemID, employeeID uint, note string) (*models.OrderItem, error) {
	unlock := lockOrder(orderID)
	defer unlock()

	item, err := assignLocked(db, orderID, itemID, employeeID, note)
	if err != nil {
		return nil, err
	}

	if item.Status == models.ItemStatusPending {
		return transitionItemLocked(db, orderID, itemID, models.ItemStatusAssigned)
	}

	if err := autoProgressLocked(db, orderID); err != nil {
		return nil, err
	}
	return item, nil
}

func assignLocked(db *gorm.DB, orderID, itemID, employeeID uint, note string) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := db.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeItemNotFound, "Order item not found")
		}
		return nil, fmt.Errorf("failed to load order item: %w", err)
	}

	var employee models.Employee
	if err := db.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError(CodeInvalidEmployee, "Employee does not exist")
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if !employee.IsActive {
		return nil, NewValidationError(CodeInvalidEmployee, "Employee is not active")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"assigned_employee_id":   employee.ID,
		"assigned_employee_name": employee.Name,
		"assigned_at":            now,
	}
	if note != "" {
		updates["assignment_notes"] = note
	}
	if err := db.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to record assignment: %w", err)
	}

	var updated models.OrderItem
	if err := db.First(&updated, item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order item: %w", err)
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err == nil {
		NotifyOrderEvent(db, &order, models.EventEngineerAssigned)
	}

	return &updated, nil
}

// AutoAssignOrder walks every unassigned, still-open item of an order and
// assigns the least-loaded eligible engineer, chaining the pending->assigned
// transition the way an administrator would, then re-evaluates
// auto-progression. Items with no eligible candidate are left unassigned.
func AutoAssignOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	unlock := lockOrder(orderID)
	defer unlock()

	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeOrderNotFound, "Order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, NewValidationError(CodeOrderCancelled,
			"Items of a cancelled order cannot be assigned")
	}

	activeCounts, err := activeTaskCounts(db)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range order.Items {
		item := &order.Items[i]
		if item.AssignedEmployeeID != nil {
			continue
		}
		if item.Status != models.ItemStatusPending {
			continue
		}

		candidates, err := EligibleEmployeesForItem(db, item)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if activeCounts[c.ID] < activeCounts[best.ID] {
				best = c
			}
		}

		updates := map[string]interface{}{
			"assigned_employee_id":   best.ID,
			"assigned_employee_name": best.Name,
			"assigned_at":            now,
			"status":                 models.ItemStatusAssigned,
		}
		if err := db.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to auto-assign item: %w", err)
		}
		activeCounts[best.ID]++
	}

	if err := autoProgressLocked(db, orderID); err != nil {
		return nil, err
	}

	var updated models.Order
	if err := db.Preload("Items").First(&updated, orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	NotifyOrderEvent(db, &updated, models.EventEngineerAssigned)
	return &updated, nil
}

// activeTaskCounts returns, per employee id, the number of order items in an
// active status currently assigned to them
func activeTaskCounts(db *gorm.DB) (map[uint]int, error) {
	var items []models.OrderItem
	err := db.Where("assigned_employee_id IS NOT NULL AND status IN ?", []string{
		models.ItemStatusPending,
		models.ItemStatusAssigned,
		models.ItemStatusScheduled,
		models.ItemStatusInProgress,
	}).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned items: %w", err)
	}

	counts := make(map[uint]int)
	for _, item := range items {
		counts[*item.AssignedEmployeeID]++
	}
	return counts, nil
}
