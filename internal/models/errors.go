package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewFieldValidationError reports per-field validation failures.
func NewFieldValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Fields:  fields,
	}
}

// NewConflictError reports a uniqueness violation (duplicate VIN, duplicate
// lookup name ignoring case).
func NewConflictError(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Fields:  fields,
	}
}

// NewProtectedError reports a refused delete of a row still referenced by
// other rows.
func NewProtectedError(message string) *AppError {
	return &AppError{
		Code:    "PROTECTED",
		Message: message,
	}
}

// NewConfigurationError reports missing server-side setup, such as an absent
// default status row.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Code:    "CONFIGURATION_ERROR",
		Message: message,
	}
}

// NewImmutableFieldError reports an admin update that touched fields other
// than the single mutable one. The whole write is refused.
func NewImmutableFieldError(fields []string) *AppError {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	return &AppError{
		Code:    "IMMUTABLE_FIELD",
		Message: fmt.Sprintf("Only 'status' can be changed. You modified: %s", strings.Join(sorted, ", ")),
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an application error to its HTTP status code. Unknown errors
// map to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR", "IMMUTABLE_FIELD":
		return fiber.StatusBadRequest
	case "CONFLICT", "PROTECTED":
		return fiber.StatusConflict
	case "CONFIGURATION_ERROR":
		return fiber.StatusInternalServerError
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Fields,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError responds using the status implied by the error itself.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, HTTPStatus(err), err)
}
