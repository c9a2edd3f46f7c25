package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// AppError represents an application error
type AppError struct {
	Code    int               `json:"-"`                // HTTP status code
	Message string            `json:"error"`            // Error message
	Fields  map[string]string `json:"fields,omitempty"` // Validation failures by field
	Err     error             `json:"-"`                // Original error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMessage returns a copy of the AppError with a custom message
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: msg,
		Fields:  e.Fields,
		Err:     e.Err,
	}
}

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

func Forbidden(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func UnprocessableEntity(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, err)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}

// NewValidationError turns a binding error into a 422 listing the failed
// fields and the rule each one broke.
func NewValidationError(err error) *AppError {
	appErr := UnprocessableEntity("Validation failed", err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		appErr.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			appErr.Fields[fe.Field()] = fe.Tag()
		}
	}
	return appErr
}
