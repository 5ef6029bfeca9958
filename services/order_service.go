package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// taxRate is the GST rate applied to the discounted subtotal
var taxRate = decimal.NewFromFloat(0.18)

// visitCharge is the flat per-order service charge
var visitCharge = decimal.NewFromInt(49)

// NewOrderItemInput is one service line of an order creation request
type NewOrderItemInput struct {
	ServiceID uint
	VariantID *uint
	Quantity  int
}

// NewOrderInput carries everything needed to create an order
type NewOrderInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	HouseNumber   string
	Area          string
	Landmark      string
	City          string
	State         string
	Pincode       string
	Priority      string
	Notes         string
	CouponCode    *string
	Items         []NewOrderItemInput
}

// GenerateOrderNumber builds a human-readable unique order number,
// e.g. HG-20260901-3FA85F64
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("HG-%s-%s", now.Format("20060102"), suffix)
}

// CreateOrder resolves catalog prices, applies an optional coupon, computes
// the order totals and persists the order with its items in one transaction
func CreateOrder(db *gorm.DB, input NewOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, NewValidationError(CodeValidation, "An order needs at least one item")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, NewValidationError(CodeValidation,
			fmt.Sprintf("Unknown priority %q", priority))
	}

	now := time.Now()
	order := models.Order{
		OrderNumber:   GenerateOrderNumber(now),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		HouseNumber:   input.HouseNumber,
		Area:          input.Area,
		Landmark:      input.Landmark,
		City:          input.City,
		State:         input.State,
		Pincode:       input.Pincode,
		Status:        models.OrderStatusPending,
		Priority:      priority,
		Notes:         input.Notes,
	}

	subtotal := decimal.Zero
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, NewValidationError(CodeValidation, "Item quantity must be at least 1")
		}

		var svc models.Service
		if err := db.Preload("Category").First(&svc, line.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError(CodeValidation,
					fmt.Sprintf("Service %d does not exist", line.ServiceID))
			}
			return nil, fmt.Errorf("failed to load service: %w", err)
		}

		item := models.OrderItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			CategoryID:  svc.CategoryID,
			Quantity:    line.Quantity,
			UnitPrice:   svc.BasePrice,
			Status:      models.ItemStatusPending,
		}

		if line.VariantID != nil {
			var variant models.ServiceVariant
			if err := db.Where("service_id = ?", svc.ID).First(&variant, *line.VariantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, NewValidationError(CodeValidation,
						fmt.Sprintf("Variant %d does not exist for service %s", *line.VariantID, svc.Name))
				}
				return nil, fmt.Errorf("failed to load variant: %w", err)
			}
			item.VariantID = &variant.ID
			item.VariantName = &variant.Name
			item.UnitPrice = variant.Price
		}

		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(item.TotalPrice)
		order.Items = append(order.Items, item)
	}

	order.Subtotal = subtotal
	order.Discount = decimal.Zero

	var coupon *models.Coupon
	if input.CouponCode != nil && *input.CouponCode != "" {
		var err error
		coupon, err = ValidateCoupon(db, *input.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		order.Discount = coupon.DiscountFor(subtotal)
		if order.Discount.GreaterThan(subtotal) {
			order.Discount = subtotal
		}
		code := coupon.Code
		order.CouponCode = &code
	}

	order.Tax = subtotal.Sub(order.Discount).Mul(taxRate).Round(2)
	order.ServiceCharge = visitCharge
	order.FinalAmount = order.ComputeFinalAmount()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if coupon != nil {
			return tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
				Update("used_count", gorm.Expr("used_count + 1")).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	var created models.Order
	if err := db.Preload("Items").First(&created, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return &created, nil
}

// ItemUpdateInput carries the mutable fields of an order item. Nil fields
// are left untouched.
type ItemUpdateInput struct {
	Status            *string
	Notes             *string
	ScheduledDate     *time.Time
	ScheduledTimeSlot *string
	Rating            *int
	Review            *string
}

// ItemUpdateResult reports the updated item plus whether a previously chosen
// time slot had to be cleared because the new date invalidated it
type ItemUpdateResult struct {
	Item            *models.OrderItem
	TimeSlotCleared bool
}

// UpdateOrderItem applies field updates to an order item, validating the
// schedule against the visit slot rules and routing status changes through
// the transition engine. Runs under the order's workflow lock.
func UpdateOrderItem(db *gorm.DB, orderID, itemID uint, input ItemUpdateInput) (*ItemUpdateResult, error) {
	unlock := lockOrder(orderID)
	defer unlock()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(CodeOrderNotFound, "Order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
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

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, NewValidationError(CodeValidation, "Rating must be between 1 and 5")
	}

	now := time.Now()
	updates := map[string]interface{}{}
	slotCleared := false

	if input.ScheduledDate != nil || input.ScheduledTimeSlot != nil {
		newDate := item.ScheduledDate
		if input.ScheduledDate != nil {
			newDate = input.ScheduledDate
		}
		newSlot := item.ScheduledTimeSlot
		if input.ScheduledTimeSlot != nil {
			newSlot = input.ScheduledTimeSlot
		}

		if newSlot != nil && newDate == nil {
			return nil, NewValidationError(CodeValidation,
				"A visit date is required before choosing a time slot")
		}

		if input.ScheduledTimeSlot != nil {
			// Explicitly chosen slot must be valid for the effective date.
			if err := ValidateSchedule(*newDate, *newSlot, now); err != nil {
				return nil, err
			}
		} else if input.ScheduledDate != nil && newSlot != nil {
			// Date changed under an existing slot: clear the slot when it is
			// no longer bookable so the caller re-selects.
			if !SlotStillValid(*newSlot, *newDate, now) {
				updates["scheduled_time_slot"] = nil
				slotCleared = true
			}
		}

		if input.ScheduledDate != nil {
			if dateOnly(*input.ScheduledDate).Before(dateOnly(now)) {
				return nil, NewValidationError(CodeValidation, "Scheduled date cannot be in the past")
			}
			updates["scheduled_date"] = *input.ScheduledDate
		}
		if input.ScheduledTimeSlot != nil {
			updates["scheduled_time_slot"] = *input.ScheduledTimeSlot
		}
	}

	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.Review != nil {
		updates["review"] = *input.Review
	}

	if len(updates) > 0 {
		if err := db.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order item: %w", err)
		}
	}

	if input.Status != nil && *input.Status != item.Status {
		updated, err := transitionItemLocked(db, orderID, itemID, *input.Status)
		if err != nil {
			return nil, err
		}
		return &ItemUpdateResult{Item: updated, TimeSlotCleared: slotCleared}, nil
	}

	var updated models.OrderItem
	if err := db.First(&updated, item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order item: %w", err)
	}
	return &ItemUpdateResult{Item: &updated, TimeSlotCleared: slotCleared}, nil
}
