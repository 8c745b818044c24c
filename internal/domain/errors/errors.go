package errors

import (
	"net/http"

	"muziris/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// Membership lifecycle errors
	ErrRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"REQUEST_NOT_FOUND",
		"Membership request not found",
		"",
	)

	ErrRequestAlreadyDecided = NewBaseError(
		http.StatusConflict,
		"REQUEST_ALREADY_DECIDED",
		"This request has already been approved or rejected",
		"",
	)

	ErrTokenInvalidOrExpired = NewBaseError(
		http.StatusBadRequest,
		"TOKEN_INVALID_OR_EXPIRED",
		"Verification link is invalid or expired",
		"",
	)

	ErrNotApproved = NewBaseError(
		http.StatusForbidden,
		"NOT_APPROVED",
		"No approved membership found for this email. Please apply for membership first.",
		"",
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusForbidden,
		"EMAIL_NOT_VERIFIED",
		"Please verify your email using the link we sent you before signing in",
		"",
	)

	// Email delivery
	ErrApprovedEmailFailed = NewBaseError(
		http.StatusBadGateway,
		"APPROVED_EMAIL_FAILED",
		"Request approved, but the notification email failed to send. Send it manually.",
		"",
	)

	ErrEmailSendFailed = NewBaseError(
		http.StatusInternalServerError,
		"EMAIL_SEND_FAILED",
		"Failed to send email",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrCredentialExists = NewBaseError(
		http.StatusConflict,
		"CREDENTIAL_EXISTS",
		"A password is already set for this account",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password must be at least 8 characters with uppercase, lowercase and a number",
		"",
	)

	ErrSessionInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_INVALID",
		"Invalid or expired session",
		"",
	)

	ErrLoginLinkInvalid = NewBaseError(
		http.StatusUnauthorized,
		"LOGIN_LINK_INVALID",
		"Sign-in link is invalid or has already been used",
		"",
	)

	// Authorization errors. The admin check deliberately reveals nothing
	// about whether the email itself is registered.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied. This email is not authorized for admin access.",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many requests. Try again in a minute.",
		"",
	)

	// Storefront errors
	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Your cart is empty",
		"",
	)

	ErrSpiceNotFound = NewBaseError(
		http.StatusNotFound,
		"SPICE_NOT_FOUND",
		"Spice not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrPaymentNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_NOT_FOUND",
		"Payment not found",
		"",
	)

	// Transaction-related errors. Usecases surface this when a store
	// transaction fails for a reason that is not itself a domain error.
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Store transaction failed",
		"",
	)

	// Fallback for errors nothing else classified; the error middleware
	// writes this envelope so internals never reach the client.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)
