package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/middleware"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
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

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing.
// It sets up the context exactly as the real EnsureValidToken middleware does.
func mockAuthMiddleware(auth0ID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)

		mockClaims := &validator.ValidatedClaims{
			CustomClaims: &middleware.CustomClaims{Role: role},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// performRequest runs one JSON request against the router
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v", err)
	}
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := parseBody(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected an error envelope, got %s", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func seedWorkflowOrder(t *testing.T, db *gorm.DB, status string, serviceNames ...string) *models.Order {
	order := models.Order{
		OrderNumber:   fmt.Sprintf("HG-TEST-%d", time.Now().UnixNano()),
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

func seedWorkflowEmployee(t *testing.T, db *gorm.DB, code, name string, areas ...string) *models.Employee {
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

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.PATCH("/api/v1/orders/:id/status", UpdateOrderStatus)

	order := seedWorkflowOrder(t, db, models.OrderStatusPending, "Tap Repair")

	tests := []struct {
		name           string
		orderID        string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Confirm pending order",
			orderID:        fmt.Sprint(order.ID),
			body:           gin.H{"status": "confirmed"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid transition rejected",
			orderID:        fmt.Sprint(order.ID),
			body:           gin.H{"status": "in_progress"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_TRANSITION",
		},
		{
			name:           "Unknown status rejected",
			orderID:        fmt.Sprint(order.ID),
			body:           gin.H{"status": "archived"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Cancel without reason rejected",
			orderID:        fmt.Sprint(order.ID),
			body:           gin.H{"status": "cancelled"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "REASON_REQUIRED",
		},
		{
			name:    "Cancel with full reason",
			orderID: fmt.Sprint(order.ID),
			body: gin.H{
				"status": "cancelled",
				"reason": "Customer called to cancel because they are moving out of town",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing order",
			orderID:        "9999",
			body:           gin.H{"status": "confirmed"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "ORDER_NOT_FOUND",
		},
		{
			name:           "Bad order id",
			orderID:        "abc",
			body:           gin.H{"status": "confirmed"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPatch, "/api/v1/orders/"+tt.orderID+"/status", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}

	// The cancellation cascaded to the item
	var item models.OrderItem
	assert.NoError(t, db.First(&item, order.Items[0].ID).Error)
	assert.Equal(t, models.ItemStatusCancelled, item.Status)
}

func TestUpdateOrderItemEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.PATCH("/api/v1/orders/:id/items/:itemId", UpdateOrderItem)

	order := seedWorkflowOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")
	itemPath := fmt.Sprintf("/api/v1/orders/%d/items/%d", order.ID, order.Items[0].ID)

	// Schedule with a date and slot
	visitDate := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	w := performRequest(router, http.MethodPatch, itemPath, gin.H{
		"scheduled_date":      visitDate,
		"scheduled_time_slot": "09:00-11:00",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	response := parseBody(t, w)
	assert.NotContains(t, response, "time_slot_cleared")

	// Malformed date
	w = performRequest(router, http.MethodPatch, itemPath, gin.H{"scheduled_date": "02-01-2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	// Unknown slot
	w = performRequest(router, http.MethodPatch, itemPath, gin.H{
		"scheduled_date":      visitDate,
		"scheduled_time_slot": "08:00-10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TIME_SLOT", errorCode(t, w))

	// Status change routed through the transition engine
	w = performRequest(router, http.MethodPatch, itemPath, gin.H{"status": "scheduled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, w))
}

func TestAssignEmployeeEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.POST("/api/v1/orders/:id/items/:itemId/assign", AssignEmployee)

	order := seedWorkflowOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")
	employee := seedWorkflowEmployee(t, db, "ENG-001", "Ravi Kumar", "Plumbing")
	path := fmt.Sprintf("/api/v1/orders/%d/items/%d/assign", order.ID, order.Items[0].ID)

	// Unknown engineer
	w := performRequest(router, http.MethodPost, path, gin.H{"employee_id": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_EMPLOYEE", errorCode(t, w))

	// Successful assignment advances the pending item to assigned
	w = performRequest(router, http.MethodPost, path, gin.H{
		"employee_id": employee.ID,
		"notes":       "customer prefers mornings",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item models.OrderItem
	assert.NoError(t, db.First(&item, order.Items[0].ID).Error)
	assert.Equal(t, models.ItemStatusAssigned, item.Status)
	assert.Equal(t, employee.ID, *item.AssignedEmployeeID)

	// All items assigned on a confirmed order: auto-progressed to scheduled
	var reloaded models.Order
	assert.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusScheduled, reloaded.Status)
}

func TestAutoAssignOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.POST("/api/v1/orders/:id/auto-assign", AutoAssignOrder)

	category := models.Category{Name: "Plumbing", IsActive: true}
	assert.NoError(t, db.Create(&category).Error)
	seedWorkflowEmployee(t, db, "ENG-001", "Ravi Kumar", "Plumbing")

	order := seedWorkflowOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")
	assert.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).
		Update("category_id", category.ID).Error)

	w := performRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/auto-assign", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item models.OrderItem
	assert.NoError(t, db.First(&item, order.Items[0].ID).Error)
	assert.Equal(t, models.ItemStatusAssigned, item.Status)
	assert.NotNil(t, item.AssignedEmployeeID)
}

func TestGetAssignmentCandidatesEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.Use(mockAuthMiddleware("auth0|admin", "admin"))
	router.GET("/api/v1/orders/:id/items/:itemId/candidates", GetAssignmentCandidates)

	category := models.Category{Name: "Plumbing", IsActive: true}
	assert.NoError(t, db.Create(&category).Error)
	seedWorkflowEmployee(t, db, "ENG-001", "Ravi Kumar", "Plumbing")
	seedWorkflowEmployee(t, db, "ENG-002", "Sunil Sharma", "Electrical")

	order := seedWorkflowOrder(t, db, models.OrderStatusConfirmed, "Tap Repair")
	assert.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).
		Update("category_id", category.ID).Error)

	w := performRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/orders/%d/items/%d/candidates", order.ID, order.Items[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		candidate := data[0].(map[string]interface{})
		assert.Equal(t, "Ravi Kumar", candidate["name"])
	}
}

func TestGetTimeSlotsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.GET("/api/v1/time-slots", GetTimeSlots)

	future := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	w := performRequest(router, http.MethodGet, "/api/v1/time-slots?date="+future, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, len(services.TimeSlots))

	w = performRequest(router, http.MethodGet, "/api/v1/time-slots?date=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
