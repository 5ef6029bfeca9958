package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"gorm.io/gorm"
)

// minReasonWords is the minimum length, in whitespace-separated words, of
// the reason required for cancelling or postponing an order.
const minReasonWords = 10

// TransitionOrder validates and applies an order-level status transition,
// including its cascades, atomically. Returns the refreshed order.
func TransitionOrder(db *gorm.DB, orderID uint, newStatus, reason string) (*models.Order, error) {
	unlock := lockOrder(orderID)
	defer unlock()
	return transitionOrderLocked(db, orderID, newStatus, reason)
}

// transitionOrderLocked is TransitionOrder without lock acquisition, for
// callers (the auto-progression trigger) already holding the order lock.
func transitionOrderLocked(db *gorm.DB, orderID uint, newStatus, reason string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeOrderNotFound, "Order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !IsValidOrderStatus(newStatus) {
		return nil, NewValidationError(CodeValidation,
			fmt.Sprintf("Unknown order status %q", newStatus))
	}

	if !CanTransitionOrder(order.Status, newStatus) {
		return nil, NewValidationError(CodeInvalidTransition,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, newStatus))
	}

	if newStatus == models.OrderStatusCancelled || newStatus == models.OrderStatusPostponed {
		if words := len(strings.Fields(reason)); words < minReasonWords {
			return nil, NewValidationError(CodeReasonRequired,
				fmt.Sprintf("A reason of at least %d words is required to mark an order %s", minReasonWords, newStatus))
		}
	}

	if order.Status == models.OrderStatusScheduled && newStatus == models.OrderStatusInProgress {
		if details := unscheduledItemDetails(order.Items); len(details) > 0 {
			return nil, NewValidationError(CodeItemsNotScheduled,
				"All items must have a visit date and time slot before work can start", details...)
		}
	}

	resuming := order.Status == models.OrderStatusPostponed && newStatus == models.OrderStatusPending

	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if reason != "" {
			note := fmt.Sprintf("[%s] %s", newStatus, reason)
			if order.AdminNotes != "" {
				note = order.AdminNotes + "\n" + note
			}
			updates["admin_notes"] = note
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		switch {
		case newStatus == models.OrderStatusCancelled:
			// Cancellation forces every item to cancelled, whatever state it was in.
			return tx.Model(&models.OrderItem{}).
				Where("order_id = ?", order.ID).
				Update("status", models.ItemStatusCancelled).Error
		case newStatus == models.OrderStatusCompleted:
			// Completion normalizes every item to completed, stamping the ones
			// that were not individually closed out.
			now := time.Now()
			return tx.Model(&models.OrderItem{}).
				Where("order_id = ? AND status <> ?", order.ID, models.ItemStatusCompleted).
				Updates(map[string]interface{}{"status": models.ItemStatusCompleted, "completed_at": now}).Error
		case resuming:
			// Resuming a postponed order restarts the workflow for re-triage:
			// statuses reset, assignment and schedule fields stay for reference.
			return tx.Model(&models.OrderItem{}).
				Where("order_id = ?", order.ID).
				Update("status", models.ItemStatusPending).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply order transition: %w", err)
	}

	var updated models.Order
	if err := db.Preload("Items").First(&updated, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	switch newStatus {
	case models.OrderStatusConfirmed:
		NotifyOrderEvent(db, &updated, models.EventOrderConfirmed)
	case models.OrderStatusCompleted:
		NotifyOrderEvent(db, &updated, models.EventOrderCompleted)
	}

	return &updated, nil
}

// unscheduledItemDetails lists, per non-cancelled item, which of
// {visit date, time slot} is still missing
func unscheduledItemDetails(items []models.OrderItem) []string {
	var details []string
	for _, item := range items {
		if item.Status == models.ItemStatusCancelled {
			continue
		}
		var missing []string
		if item.ScheduledDate == nil {
			missing = append(missing, "visit date")
		}
		if item.ScheduledTimeSlot == nil {
			missing = append(missing, "time slot")
		}
		if len(missing) > 0 {
			details = append(details,
				fmt.Sprintf("%s: missing %s", item.ServiceName, strings.Join(missing, " and ")))
		}
	}
	return details
}

// TransitionItem validates and applies an item-level status transition,
// then re-evaluates order-level auto-progression.
func TransitionItem(db *gorm.DB, orderID, itemID uint, newStatus string) (*models.OrderItem, error) {
	unlock := lockOrder(orderID)
	defer unlock()
	return transitionItemLocked(db, orderID, itemID, newStatus)
}

func transitionItemLocked(db *gorm.DB, orderID, itemID uint, newStatus string) (*models.OrderItem, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeOrderNotFound, "Order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	// Cancelled orders are immutable at the item level; the cancellation
	// cascade already forced every item to cancelled.
	if order.Status == models.OrderStatusCancelled {
		return nil, NewValidationError(CodeOrderCancelled,
			"Items of a cancelled order cannot be updated")
	}

	var item models.OrderItem
	if err := db.Where("order_id = ?", orderID).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeItemNotFound, "Order item not found")
		}
		return nil, fmt.Errorf("failed to load order item: %w", err)
	}

	if !IsValidItemStatus(newStatus) {
		return nil, NewValidationError(CodeValidation,
			fmt.Sprintf("Unknown item status %q", newStatus))
	}

	if !CanTransitionItem(item.Status, newStatus) {
		return nil, NewValidationError(CodeInvalidTransition,
			fmt.Sprintf("Cannot move item from %s to %s", item.Status, newStatus))
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.ItemStatusCompleted {
		updates["completed_at"] = time.Now()
	}
	if err := db.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}

	if err := autoProgressLocked(db, orderID); err != nil {
		return nil, err
	}

	var updated models.OrderItem
	if err := db.First(&updated, item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order item: %w", err)
	}
	return &updated, nil
}
