package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountSuspended() *AppError {
	return New("AUTH_003", "Admin account is suspended", http.StatusForbidden)
}

// ---- Order Lifecycle (ORD) ----

func ErrTransitionBlocked(current, action string) *AppError {
	return New("ORD_001", fmt.Sprintf("action %q is not allowed from status %q", action, current), http.StatusConflict)
}

func ErrMissingShippingInfo(field string) *AppError {
	return New("ORD_002", fmt.Sprintf("%s is required before marking out for delivery", field), http.StatusBadRequest)
}

func ErrConfirmationRequired() *AppError {
	return New("ORD_003", "This action is irreversible and must be confirmed", http.StatusBadRequest)
}

func ErrStatusUnchanged() *AppError {
	return New("ORD_004", "Selected status is the same as the current status", http.StatusBadRequest)
}

func ErrUnknownStatus(status string) *AppError {
	return New("ORD_005", fmt.Sprintf("unknown status %q", status), http.StatusBadRequest)
}

// ---- Redemption & Vault (VLT) ----

func ErrVaultAssignmentBlocked() *AppError {
	return New("VLT_001", "Vault can only be assigned to an approved redemption", http.StatusConflict)
}

func ErrShippingNotApplicable() *AppError {
	return New("VLT_002", "Shipping details only apply to delivery-mode redemptions", http.StatusBadRequest)
}

// ---- Vendor (VND) ----

func ErrVendorNotAccepting() *AppError {
	return New("VND_001", "Vendor is not accepting orders", http.StatusConflict)
}

// ---- Wallet (WAL) ----

func ErrWalletFrozen() *AppError {
	return New("WAL_001", "Wallet is already frozen", http.StatusConflict)
}

// ---- Generic ----

func ErrNotFound(entity string) *AppError {
	return New("GEN_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("GEN_002", message, http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}
