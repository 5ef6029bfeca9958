package services

import (
	"github.com/homegenie-services/homegenie-api/models"
)

// orderStatusFlow is the table of allowed order status transitions.
// cancelled and postponed are side-exits from every non-terminal state;
// postponed -> pending is the sole recovery path. completed is reachable
// from confirmed/scheduled as well as in_progress so that the
// auto-completion trigger can normalize an order whose items were all
// completed before work was formally started.
var orderStatusFlow = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled, models.OrderStatusPostponed},
	models.OrderStatusConfirmed:  {models.OrderStatusScheduled, models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusPostponed},
	models.OrderStatusScheduled:  {models.OrderStatusInProgress, models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusPostponed},
	models.OrderStatusInProgress: {models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusPostponed},
	models.OrderStatusPostponed:  {models.OrderStatusPending, models.OrderStatusCancelled},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCancelled:  {},
}

// itemStatusFlow is the table of allowed order item status transitions.
// Completion is allowed straight from scheduled because engineers routinely
// close out a visit without the admin ever marking it in progress. cancelled
// is reachable from every state, completed included, so an admin can undo a
// mistaken close-out; only cancelled itself is terminal.
var itemStatusFlow = map[string][]string{
	models.ItemStatusPending:    {models.ItemStatusAssigned, models.ItemStatusCancelled},
	models.ItemStatusAssigned:   {models.ItemStatusScheduled, models.ItemStatusCancelled},
	models.ItemStatusScheduled:  {models.ItemStatusInProgress, models.ItemStatusCompleted, models.ItemStatusCancelled},
	models.ItemStatusInProgress: {models.ItemStatusCompleted, models.ItemStatusCancelled},
	models.ItemStatusCompleted:  {models.ItemStatusCancelled},
	models.ItemStatusCancelled:  {},
}

// CanTransitionOrder reports whether an order may move from one status to another
func CanTransitionOrder(from, to string) bool {
	for _, allowed := range orderStatusFlow[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionItem reports whether an order item may move from one status to another
func CanTransitionItem(from, to string) bool {
	for _, allowed := range itemStatusFlow[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether s is a known order status value
func IsValidOrderStatus(s string) bool {
	for _, v := range models.ValidOrderStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidItemStatus reports whether s is a known order item status value
func IsValidItemStatus(s string) bool {
	for _, v := range models.ValidItemStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether s is a known order priority value
func IsValidPriority(s string) bool {
	for _, v := range models.ValidPriorities() {
		if v == s {
			return true
		}
	}
	return false
}
