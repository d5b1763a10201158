package util

import (
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/fairfound-coach/internal/config"
	"github.com/fadilmartias/fairfound-coach/internal/response"
	"github.com/gofiber/fiber/v2"
)

// Error codes carried in the envelope's "code" field.
const (
	CodeValidation       = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeTransportFailure = "TRANSPORT_FAILURE"
	CodeSchemaError      = "SCHEMA_ERROR"
	CodeInternal         = "INTERNAL"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	ErrorCode  string
	Message    string
	DevMessage string
	Details    any
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ErrorCode  string `json:"code"`
	RequestID  string `json:"request_id,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// FormError carries per-field validation messages keyed by JSON field name.
type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", e.Message, len(e.Errors))
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// FieldError is shorthand for a FormError with a single field.
func FieldError(message, field, reason string) *FormError {
	return NewFormError(message, map[string]string{field: reason})
}

func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes the error envelope. Outside production the first error
// is echoed as dev_message together with a stack trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	status := params.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	code := params.ErrorCode
	if code == "" {
		code = defaultErrorCode(status)
	}

	body := OrderedErrorResponse{
		Success:   false,
		Message:   params.Message,
		ErrorCode: code,
		Details:   params.Details,
	}
	if id, ok := c.Locals("request_id").(string); ok {
		body.RequestID = id
	}

	if !config.LoadAppConfig().IsProduction() {
		body.DevMessage = params.DevMessage
		if body.DevMessage == "" && len(errs) > 0 && errs[0] != nil {
			body.DevMessage = errs[0].Error()
		}
		if status >= fiber.StatusInternalServerError {
			body.Trace = string(debug.Stack())
		}
	}
	return c.Status(status).JSON(body)
}

func defaultErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return CodeValidation
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusTooManyRequests:
		return CodeRateLimited
	}
	return CodeInternal
}
