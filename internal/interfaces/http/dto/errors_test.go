package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"contact not synced", ErrCodeContactNotSynced, http.StatusUnprocessableEntity},
		{"already transmitted", ErrCodeAlreadyTransmitted, http.StatusConflict},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain contact not synced", "CONTACT_NOT_SYNCED", ErrCodeContactNotSynced},
		{"domain already transmitted", "ALREADY_TRANSMITTED", ErrCodeAlreadyTransmitted},
		{"domain validation detail", "INVALID_VOUCHER_DATE", ErrCodeValidation},
		{"already normalized", ErrCodeConflict, ErrCodeConflict},
		{"unknown passes through", "SOMETHING_CUSTOM", "SOMETHING_CUSTOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestErrorCodeHTTPStatusCoverage(t *testing.T) {
	// every normalized target of the legacy mapping must resolve to a status
	for legacy, normalized := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[normalized]
		assert.True(t, ok, "legacy code %s maps to %s which has no HTTP status", legacy, normalized)
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "company_name", Message: "is required"},
	}
	resp := NewValidationErrorResponse("validation failed", "req-123", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "company_name", resp.Error.Details[0].Field)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "invoice not found", "req-456")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "invoice not found", resp.Error.Message)
	assert.Equal(t, "req-456", resp.Error.RequestID)
}
