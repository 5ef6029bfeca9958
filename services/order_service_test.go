package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Service, *models.ServiceVariant) {
	category := seedCategory(t, db, "Plumbing")
	service := models.Service{
		CategoryID: category.ID,
		Name:       "Tap Repair",
		BasePrice:  decimal.NewFromInt(300),
		IsActive:   true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("Failed to seed service: %v", err)
	}
	variant := models.ServiceVariant{
		ServiceID: service.ID,
		Name:      "Premium fittings",
		Price:     decimal.NewFromInt(450),
		IsActive:  true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("Failed to seed variant: %v", err)
	}
	return &service, &variant
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	number := GenerateOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^HG-20260901-[0-9A-F]{8}$`), number)
	assert.NotEqual(t, number, GenerateOrderNumber(now))
}

func TestCreateOrderComputesTotals(t *testing.T) {
	db := newTestDB(t)
	service, _ := seedCatalog(t, db)

	order, err := CreateOrder(db, NewOrderInput{
		CustomerName:  "Asha Verma",
		CustomerPhone: "+919876543210",
		City:          "Pune",
		Items: []NewOrderItemInput{
			{ServiceID: service.ID, Quantity: 2},
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PriorityMedium, order.Priority, "priority defaults to medium")
	assert.Len(t, order.Items, 1)
	assert.Equal(t, models.ItemStatusPending, order.Items[0].Status)

	// 2 x 300 = 600 subtotal, 18% tax, 49 visit charge
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(600)), order.Subtotal.String())
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(108)), order.Tax.String())
	assert.True(t, order.ServiceCharge.Equal(decimal.NewFromInt(49)))
	assert.True(t, order.FinalAmount.Equal(decimal.NewFromInt(757)), order.FinalAmount.String())
	assert.True(t, order.FinalAmount.Equal(order.ComputeFinalAmount()))
}

func TestCreateOrderUsesVariantPrice(t *testing.T) {
	db := newTestDB(t)
	service, variant := seedCatalog(t, db)

	order, err := CreateOrder(db, NewOrderInput{
		CustomerName:  "Asha Verma",
		CustomerPhone: "+919876543210",
		Items: []NewOrderItemInput{
			{ServiceID: service.ID, VariantID: &variant.ID, Quantity: 1},
		},
	})
	assert.NoError(t, err)

	item := order.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(450)))
	if assert.NotNil(t, item.VariantName) {
		assert.Equal(t, "Premium fittings", *item.VariantName)
	}
}

func TestCreateOrderAppliesCoupon(t *testing.T) {
	db := newTestDB(t)
	service, _ := seedCatalog(t, db)
	coupon := models.Coupon{
		Code:     "WELCOME10",
		Type:     models.CouponTypePercent,
		Value:    decimal.NewFromInt(10),
		IsActive: true,
	}
	assert.NoError(t, db.Create(&coupon).Error)

	code := "welcome10" // lookup is case-insensitive
	order, err := CreateOrder(db, NewOrderInput{
		CustomerName:  "Asha Verma",
		CustomerPhone: "+919876543210",
		CouponCode:    &code,
		Items: []NewOrderItemInput{
			{ServiceID: service.ID, Quantity: 2},
		},
	})
	assert.NoError(t, err)

	// 600 subtotal, 60 discount, tax on the discounted 540
	assert.True(t, order.Discount.Equal(decimal.NewFromInt(60)), order.Discount.String())
	assert.True(t, order.Tax.Equal(decimal.NewFromFloat(97.2)), order.Tax.String())
	assert.True(t, order.FinalAmount.Equal(order.ComputeFinalAmount()))
	if assert.NotNil(t, order.CouponCode) {
		assert.Equal(t, "WELCOME10", *order.CouponCode)
	}

	var reloaded models.Coupon
	assert.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	service, _ := seedCatalog(t, db)

	tests := []struct {
		name  string
		input NewOrderInput
	}{
		{"no items", NewOrderInput{CustomerName: "A", CustomerPhone: "1"}},
		{"zero quantity", NewOrderInput{CustomerName: "A", CustomerPhone: "1",
			Items: []NewOrderItemInput{{ServiceID: service.ID, Quantity: 0}}}},
		{"unknown service", NewOrderInput{CustomerName: "A", CustomerPhone: "1",
			Items: []NewOrderItemInput{{ServiceID: 999, Quantity: 1}}}},
		{"unknown priority", NewOrderInput{CustomerName: "A", CustomerPhone: "1", Priority: "asap",
			Items: []NewOrderItemInput{{ServiceID: service.ID, Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateOrder(db, tt.input)
			assert.Equal(t, CodeValidation, workflowCode(t, err))
		})
	}
}

func TestUpdateOrderItemSchedules(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	visit := dateOnly(time.Now().AddDate(0, 0, 2))
	slot := "09:00-11:00"
	result, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		ScheduledDate:     &visit,
		ScheduledTimeSlot: &slot,
	})
	assert.NoError(t, err)
	assert.False(t, result.TimeSlotCleared)
	assert.True(t, result.Item.IsFullyScheduled())
	assert.Equal(t, slot, *result.Item.ScheduledTimeSlot)
}

func TestUpdateOrderItemRejectsSlotWithoutDate(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	slot := "09:00-11:00"
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		ScheduledTimeSlot: &slot,
	})
	assert.Equal(t, CodeValidation, workflowCode(t, err))
}

func TestUpdateOrderItemRejectsPastDate(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	past := time.Now().AddDate(0, 0, -1)
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		ScheduledDate: &past,
	})
	assert.Equal(t, CodeValidation, workflowCode(t, err))
}

func TestUpdateOrderItemClearsStaleSlot(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	// Scheduled for the 09:00 window two days out
	future := dateOnly(time.Now().AddDate(0, 0, 2))
	slot := "07:00-09:00"
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		ScheduledDate:     &future,
		ScheduledTimeSlot: &slot,
	})
	assert.NoError(t, err)

	// Pull the visit in to today after the window has passed: the slot is no
	// longer bookable and must be cleared
	if time.Now().Hour() < 9 {
		t.Skip("window still bookable at this time of day")
	}
	today := dateOnly(time.Now())
	result, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		ScheduledDate: &today,
	})
	assert.NoError(t, err)
	assert.True(t, result.TimeSlotCleared)
	assert.Nil(t, result.Item.ScheduledTimeSlot)
	assert.NotNil(t, result.Item.ScheduledDate)
}

func TestUpdateOrderItemRatingBounds(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	bad := 6
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{Rating: &bad})
	assert.Equal(t, CodeValidation, workflowCode(t, err))

	good := 5
	review := "Quick and tidy work"
	result, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{
		Rating: &good,
		Review: &review,
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, *result.Item.Rating)
	assert.Equal(t, review, *result.Item.Review)
}

func TestUpdateOrderItemOnCancelledOrder(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusCancelled, "Tap Repair")

	notes := "anything"
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{Notes: &notes})
	assert.Equal(t, CodeOrderCancelled, workflowCode(t, err))
}

func TestUpdateOrderItemStatusRoutesThroughEngine(t *testing.T) {
	db := newTestDB(t)
	order := seedOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")

	status := models.ItemStatusScheduled
	_, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{Status: &status})
	assert.Equal(t, CodeInvalidTransition, workflowCode(t, err), "pending cannot jump to scheduled")

	status = models.ItemStatusAssigned
	result, err := UpdateOrderItem(db, order.ID, order.Items[0].ID, ItemUpdateInput{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusAssigned, result.Item.Status)
}
