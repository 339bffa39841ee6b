// Package errors defines the service error taxonomy shared by handlers and
// services. A ServiceError carries an error code, a user-facing message and
// the HTTP status the API layer should respond with.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of service error.
type Code string

const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeRateLimited     Code = "RATE_LIMIT_EXCEEDED"
	CodeAINotConfigured Code = "AI_NOT_CONFIGURED"
	CodeAIQuotaExceeded Code = "AI_QUOTA_EXCEEDED"
	CodeAIRateLimited   Code = "AI_RATE_LIMITED"
	CodeAIOffline       Code = "AI_OFFLINE"
)

// ServiceError is an error with an HTTP mapping and optional details.
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// WithDetails attaches a key/value detail and returns the error for chaining.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation reports a missing or malformed request field.
func Validation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NotFound reports an entity that is absent or not owned by the caller.
func NotFound(entity string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: entity + " not found", HTTPStatus: http.StatusNotFound}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "unauthorized"
	}
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// RateLimitExceeded reports that the caller spent its request budget.
func RateLimitExceeded(limit int) *ServiceError {
	e := &ServiceError{Code: CodeRateLimited, Message: "Too many requests. Please slow down.", HTTPStatus: http.StatusTooManyRequests}
	return e.WithDetails("limit_per_second", limit)
}

// AINotConfigured reports a missing insight-service credential.
func AINotConfigured() *ServiceError {
	return &ServiceError{Code: CodeAINotConfigured, Message: "AI service configuration error", HTTPStatus: http.StatusServiceUnavailable}
}

// AIQuotaExceeded reports an exhausted upstream quota.
func AIQuotaExceeded() *ServiceError {
	return &ServiceError{Code: CodeAIQuotaExceeded, Message: "AI service quota exceeded. Please try again later.", HTTPStatus: http.StatusServiceUnavailable}
}

// AIRateLimited reports upstream throttling.
func AIRateLimited() *ServiceError {
	return &ServiceError{Code: CodeAIRateLimited, Message: "Too many requests. Please try again in a few moments.", HTTPStatus: http.StatusTooManyRequests}
}

// AIOffline reports a generic upstream outage.
func AIOffline(err error) *ServiceError {
	return &ServiceError{Code: CodeAIOffline, Message: "AI services are currently offline. Please try again later.", HTTPStatus: http.StatusBadGateway, Err: err}
}

// GetServiceError returns the ServiceError in err's chain, or nil.
func GetServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// IsNotFound reports whether err is a not-found service error.
func IsNotFound(err error) bool {
	svcErr := GetServiceError(err)
	return svcErr != nil && svcErr.Code == CodeNotFound
}

// IsConflict reports whether err is a conflict service error.
func IsConflict(err error) bool {
	svcErr := GetServiceError(err)
	return svcErr != nil && svcErr.Code == CodeConflict
}

// IsValidation reports whether err is a validation service error.
func IsValidation(err error) bool {
	svcErr := GetServiceError(err)
	return svcErr != nil && svcErr.Code == CodeValidation
}

// IsUnauthorized reports whether err is an unauthorized service error.
func IsUnauthorized(err error) bool {
	svcErr := GetServiceError(err)
	return svcErr != nil && svcErr.Code == CodeUnauthorized
}
