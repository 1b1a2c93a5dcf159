package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeMissingField, http.StatusBadRequest},
		{ErrCodeUnknownTicker, http.StatusBadRequest},
		{ErrCodeUnsupportedCurrency, http.StatusBadRequest},
		{ErrCodeAssetNotFound, http.StatusNotFound},
		{ErrCodeRateLimit, http.StatusTooManyRequests},
		{ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeDataUnavailable, http.StatusServiceUnavailable},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "msg").StatusCode)
		})
	}
}

func TestWrap_CapturesCause(t *testing.T) {
	err := Wrap(fmt.Errorf("dial tcp: connection refused"), ErrCodeStoreUnavailable, "position store is unreachable")

	assert.Equal(t, ErrCodeStoreUnavailable, err.Code)
	assert.Equal(t, "dial tcp: connection refused", err.Details["cause"])
	assert.Contains(t, err.Error(), "STORE_UNAVAILABLE")
}

func TestAddDetail(t *testing.T) {
	err := ValidationError("quantity must be positive").AddDetail("quantity", "-3")

	assert.Equal(t, "-3", err.Details["quantity"])
}

func TestStoreUnavailable(t *testing.T) {
	err := StoreUnavailable(fmt.Errorf("no reachable servers"))

	assert.Equal(t, ErrCodeStoreUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
}
