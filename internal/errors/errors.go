// Package errors provides custom error types for the budgetbuddy API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrNotFound) matches wrapped copies of a sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "You must be logged in", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound        = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer  = &AppError{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred. Please try again.", StatusCode: http.StatusInternalServerError}
	ErrPayloadTooLarge = &AppError{Code: "PAYLOAD_TOO_LARGE", Message: "Request body is too large", StatusCode: http.StatusRequestEntityTooLarge}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound      = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategoryName = &AppError{Code: "DUPLICATE_CATEGORY_NAME", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found or you don't have permission to delete it", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)

// Photo analysis errors. The model call is best effort; every failure is
// collapsed into one of these five user-facing categories.
var (
	ErrAINotConfigured    = &AppError{Code: "AI_NOT_CONFIGURED", Message: "Google Gemini is not configured. Set GOOGLE_GENERATIVE_AI_API_KEY to enable photo analysis.", StatusCode: http.StatusServiceUnavailable}
	ErrAIQuotaExceeded    = &AppError{Code: "AI_QUOTA_EXCEEDED", Message: "Your Google AI API quota is exhausted or billing is inactive. Please check your usage at https://aistudio.google.com/app/apikey.", StatusCode: http.StatusTooManyRequests}
	ErrAIInvalidKey       = &AppError{Code: "AI_INVALID_KEY", Message: "Invalid Google AI API key. Please check your GOOGLE_GENERATIVE_AI_API_KEY.", StatusCode: http.StatusBadGateway}
	ErrAIContentBlocked   = &AppError{Code: "AI_CONTENT_BLOCKED", Message: "Image was blocked by safety filters. Please try a different image.", StatusCode: http.StatusUnprocessableEntity}
	ErrAIUnsupportedImage = &AppError{Code: "AI_UNSUPPORTED_IMAGE", Message: "Image format not supported. Please try a JPEG or PNG image.", StatusCode: http.StatusUnsupportedMediaType}
	ErrAIAnalysisFailed   = &AppError{Code: "AI_ANALYSIS_FAILED", Message: "Failed to analyse the image. Please try again later.", StatusCode: http.StatusBadGateway}
)
