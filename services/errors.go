package services

import (
	"errors"
	"fmt"
)

// Workflow error codes returned to the HTTP layer
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeReasonRequired    = "REASON_REQUIRED"
	CodeItemsNotScheduled = "ITEMS_NOT_SCHEDULED"
	CodeOrderCancelled    = "ORDER_CANCELLED"
	CodeInvalidEmployee   = "INVALID_EMPLOYEE"
	CodeInvalidTimeSlot   = "INVALID_TIME_SLOT"
	CodeOrderNotFound     = "ORDER_NOT_FOUND"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeEmployeeNotFound  = "EMPLOYEE_NOT_FOUND"
	CodeCouponNotFound    = "COUPON_NOT_FOUND"
	CodeCouponInvalid     = "COUPON_INVALID"
	CodeConflict          = "CONFLICT"
	CodeDatabase          = "DATABASE_ERROR"
)

// WorkflowError is the structured rejection returned by the workflow core.
// Details carries per-item specifics, e.g. which items are missing schedule
// fields on a start-work rejection.
type WorkflowError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a caller-input rejection
func NewValidationError(code, message string, details ...string) *WorkflowError {
	return &WorkflowError{Code: code, Message: message, Details: details}
}

// NewNotFoundError builds a missing-entity rejection
func NewNotFoundError(code, message string) *WorkflowError {
	return &WorkflowError{Code: code, Message: message}
}

// AsWorkflowError unwraps err into a WorkflowError if possible
func AsWorkflowError(err error) (*WorkflowError, bool) {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return wfErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found rejection
func IsNotFound(err error) bool {
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		return false
	}
	switch wfErr.Code {
	case CodeOrderNotFound, CodeItemNotFound, CodeEmployeeNotFound, CodeCouponNotFound:
		return true
	}
	return false
}
