package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WAL_001", "Wallet is already frozen", http.StatusConflict),
			expected: "[WAL_001] Wallet is already frozen",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("GEN_002", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_002", 401},
		{"AccountSuspended", ErrAccountSuspended(), "AUTH_003", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestOrderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"TransitionBlocked", ErrTransitionBlocked("Delivered", "cancel"), "ORD_001", 409},
		{"MissingShippingInfo", ErrMissingShippingInfo("AWB number"), "ORD_002", 400},
		{"ConfirmationRequired", ErrConfirmationRequired(), "ORD_003", 400},
		{"StatusUnchanged", ErrStatusUnchanged(), "ORD_004", 400},
		{"UnknownStatus", ErrUnknownStatus("Teleported"), "ORD_005", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTransitionBlocked_NamesStatusAndAction(t *testing.T) {
	err := ErrTransitionBlocked("Delivered", "cancel")
	assert.Contains(t, err.Message, "Delivered")
	assert.Contains(t, err.Message, "cancel")
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"VaultAssignmentBlocked", ErrVaultAssignmentBlocked(), "VLT_001", 409},
		{"ShippingNotApplicable", ErrShippingNotApplicable(), "VLT_002", 400},
		{"VendorNotAccepting", ErrVendorNotAccepting(), "VND_001", 409},
		{"WalletFrozen", ErrWalletFrozen(), "WAL_001", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	intErr := InternalError(inner)
	assert.Equal(t, "SYS_001", intErr.Code)
	assert.Equal(t, 500, intErr.HTTPStatus)
	assert.True(t, errors.Is(intErr, inner))

	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_002", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Vault")
	assert.Contains(t, err.Message, "Vault")
	assert.Equal(t, "GEN_001", err.Code)
	assert.Equal(t, 404, err.HTTPStatus)
}
