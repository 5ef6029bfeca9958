package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/homegenie-services/homegenie-api/services"
)

// CreateEmployeeRequest represents the request body for creating an engineer
type CreateEmployeeRequest struct {
	EmployeeCode   string   `json:"employee_code" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Manager        string   `json:"manager"`
	Phone          string   `json:"phone" binding:"required"`
	Email          string   `json:"email" binding:"omitempty,email"`
	ExpertiseAreas []string `json:"expertise_areas"`
}

// CreateEmployee handles POST /api/v1/employees
func CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	employee := models.Employee{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Manager:      req.Manager,
		Phone:        req.Phone,
		Email:        req.Email,
		IsActive:     true,
	}
	employee.SetExpertiseList(req.ExpertiseAreas)

	db := config.GetDB()
	if err := db.Create(&employee).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			respondError(c, http.StatusConflict, "EMPLOYEE_EXISTS", "An employee with this code already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    employee,
	})
}

// ListEmployees handles GET /api/v1/employees - lists engineers, optionally
// filtered by expertise area or active flag
func ListEmployees(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Employee{})
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var employees []models.Employee
	if err := query.Order("name").Find(&employees).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load employees")
		return
	}

	if expertise := c.Query("expertise"); expertise != "" {
		filtered := make([]models.Employee, 0, len(employees))
		for _, e := range employees {
			if e.HasExpertise(expertise) {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employees,
	})
}

// GetEmployee handles GET /api/v1/employees/:id
func GetEmployee(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid employee id")
		return
	}

	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employee,
	})
}

// UpdateEmployeeRequest represents the request body for updating an engineer
type UpdateEmployeeRequest struct {
	Name           *string   `json:"name"`
	Manager        *string   `json:"manager"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email" binding:"omitempty,email"`
	ExpertiseAreas *[]string `json:"expertise_areas"`
	IsActive       *bool     `json:"is_active"`
}

// UpdateEmployee handles PUT /api/v1/employees/:id
func UpdateEmployee(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid employee id")
		return
	}

	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Manager != nil {
		employee.Manager = *req.Manager
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.ExpertiseAreas != nil {
		employee.SetExpertiseList(*req.ExpertiseAreas)
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := db.Save(&employee).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employee,
	})
}

// DeactivateEmployee handles DELETE /api/v1/employees/:id - soft deactivate.
// Existing assignments keep the employee id and denormalized name; the id
// becomes a historical reference that need not resolve to an active engineer.
func DeactivateEmployee(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid employee id")
		return
	}

	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
		return
	}

	if err := db.Model(&employee).Update("is_active", false).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to deactivate employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee deactivated",
	})
}

// GetEngineerWorkloadStats handles GET /api/v1/employees/workload - computes
// per-engineer active task counts and summary statistics
func GetEngineerWorkloadStats(c *gin.Context) {
	db := config.GetDB()

	var employees []models.Employee
	if err := db.Order("id").Find(&employees).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load employees")
		return
	}

	var items []models.OrderItem
	if err := db.Where("assigned_employee_id IS NOT NULL").Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.ComputeWorkload(employees, items),
	})
}
