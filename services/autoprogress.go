package services

import (
	"errors"
	"fmt"

	"github.com/homegenie-services/homegenie-api/models"
	"gorm.io/gorm"
)

// AutoProgress re-evaluates an order's aggregate item state after an item
// mutation and advances the order when a rule matches:
//
//  1. confirmed + every item assigned  -> scheduled
//  2. every item completed             -> completed
//
// Re-running on an already-consistent state is a no-op.
func AutoProgress(db *gorm.DB, orderID uint) error {
	unlock := lockOrder(orderID)
	defer unlock()
	return autoProgressLocked(db, orderID)
}

func autoProgressLocked(db *gorm.DB, orderID uint) error {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError(CodeOrderNotFound, "Order not found")
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if len(order.Items) == 0 || order.IsTerminal() {
		return nil
	}

	// Rule 1 before rule 2; when both fire in one pass the order moves
	// confirmed -> scheduled -> completed.
	if order.Status == models.OrderStatusConfirmed && allItemsAssigned(order.Items) {
		if _, err := transitionOrderLocked(db, orderID, models.OrderStatusScheduled, ""); err != nil {
			return err
		}
		order.Status = models.OrderStatusScheduled
	}

	if allItemsCompleted(order.Items) && CanTransitionOrder(order.Status, models.OrderStatusCompleted) {
		_, err := transitionOrderLocked(db, orderID, models.OrderStatusCompleted, "")
		return err
	}

	return nil
}

// allItemsAssigned reports whether every non-cancelled item has an engineer
func allItemsAssigned(items []models.OrderItem) bool {
	seen := false
	for _, item := range items {
		if item.Status == models.ItemStatusCancelled {
			continue
		}
		if item.AssignedEmployeeID == nil {
			return false
		}
		seen = true
	}
	return seen
}

// allItemsCompleted reports whether every item is completed
func allItemsCompleted(items []models.OrderItem) bool {
	for _, item := range items {
		if item.Status != models.ItemStatusCompleted {
			return false
		}
	}
	return true
}
