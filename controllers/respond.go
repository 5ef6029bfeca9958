package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/services"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondWorkflowError maps a workflow core rejection onto an HTTP response,
// keeping the structured code/message/details intact for the admin UI
func respondWorkflowError(c *gin.Context, err error) {
	wfErr, ok := services.AsWorkflowError(err)
	if !ok {
		respondError(c, http.StatusInternalServerError, services.CodeDatabase, "Operation failed")
		return
	}

	status := http.StatusBadRequest
	switch {
	case services.IsNotFound(err):
		status = http.StatusNotFound
	case wfErr.Code == services.CodeConflict:
		status = http.StatusConflict
	case wfErr.Code == services.CodeDatabase:
		status = http.StatusInternalServerError
	}

	body := gin.H{
		"code":    wfErr.Code,
		"message": wfErr.Message,
	}
	if len(wfErr.Details) > 0 {
		body["details"] = wfErr.Details
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}
