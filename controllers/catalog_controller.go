package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
	"github.com/shopspring/decimal"
)

// CategoryRequest represents the request body for category create/update
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// ListCategories handles GET /api/v1/categories - the storefront browse list.
// Image URLs are presigned on the way out when the image service is up.
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Category{})
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Order("sort_order, name").Preload("Services", "is_active = ?", true).Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load categories")
		return
	}

	if imageService := services.GetImageService(); imageService != nil {
		for i := range categories {
			if categories[i].ImageS3Key != nil {
				if url, err := imageService.GetImageURL(*categories[i].ImageS3Key); err == nil && url != "" {
					categories[i].ImageURL = &url
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func UpdateCategory(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := db.Save(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// ServiceRequest represents the request body for service create/update
type ServiceRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	IsActive    *bool           `json:"is_active"`
}

// CreateService handles POST /api/v1/services
func CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.BasePrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "base_price cannot be negative")
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Category does not exist")
		return
	}

	service := models.Service{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := db.Create(&service).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// ListServices handles GET /api/v1/services - optionally filtered by category
func ListServices(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Service{}).Preload("Variants")
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var svcs []models.Service
	if err := query.Order("name").Find(&svcs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load services")
		return
	}

	if imageService := services.GetImageService(); imageService != nil {
		for i := range svcs {
			if svcs[i].ImageS3Key != nil {
				if url, err := imageService.GetImageURL(*svcs[i].ImageS3Key); err == nil && url != "" {
					svcs[i].ImageURL = &url
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    svcs,
	})
}

// UpdateService handles PUT /api/v1/services/:id
func UpdateService(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.BasePrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "base_price cannot be negative")
		return
	}

	service.CategoryID = req.CategoryID
	service.Name = req.Name
	service.Description = req.Description
	service.BasePrice = req.BasePrice
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := db.Save(&service).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// VariantRequest represents the request body for a service variant
type VariantRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	IsActive *bool           `json:"is_active"`
}

// CreateServiceVariant handles POST /api/v1/services/:id/variants
func CreateServiceVariant(c *gin.Context) {
	db := config.GetDB()

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	var service models.Service
	if err := db.First(&service, serviceID).Error; err != nil {
		respondError(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.Price.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "price cannot be negative")
		return
	}

	variant := models.ServiceVariant{
		ServiceID: service.ID,
		Name:      req.Name,
		Price:     req.Price,
		IsActive:  true,
	}
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := db.Create(&variant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    variant,
	})
}
