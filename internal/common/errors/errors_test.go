package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{
			name:            "invalid input is not retried",
			err:             NewInvalidInputError("no valid events to analyze", "eventIds: [missing]"),
			expectedCode:    "INVALID_INPUT",
			expectedRetries: 0,
		},
		{
			name:            "vendor store failure is retried",
			err:             NewVendorsFetchFailedError(fmt.Errorf("connection reset")),
			expectedCode:    "VENDORS_FETCH_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "query timeout gets partial retries",
			err:             NewQueryTimeoutError("events_by_ids"),
			expectedCode:    "QUERY_TIMEOUT",
			expectedRetries: 2,
		},
		{
			name:            "index not found is a configuration error",
			err:             NewIndexNotFoundError("vendors"),
			expectedCode:    "INDEX_NOT_FOUND",
			expectedRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmn.Code)
			assert.Equal(t, tt.expectedRetries, bpmn.Retries)
			assert.Equal(t, tt.expectedCode, bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
			assert.Equal(t, tt.err.Retryable, vars["retryable"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	err := NewInvalidInputError("no valid events to analyze", "").
		WithMetadata("eventsRequested", 3)

	bpmn := ConvertToBPMNError(err)
	assert.Equal(t, 3, bpmn.ErrorVariables["eventsRequested"])
}

func TestAsStandardError_Wrapped(t *testing.T) {
	base := NewInvalidInputError("eventIds must not be empty", "")
	wrapped := fmt.Errorf("recommend: %w", base)

	got, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidInput, got.Code)
	assert.True(t, HasCode(wrapped, ErrCodeInvalidInput))
	assert.False(t, HasCode(wrapped, ErrCodeQueryTimeout))
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := stderrors.New("pq: connection refused")
	err := NewEventsFetchFailedError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestNormalize_PlainError(t *testing.T) {
	got := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, got.Code)
	assert.False(t, got.Retryable)
	assert.Equal(t, "boom", got.Details)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		jobRetries      int32
		expectedAction  Action
		expectedRetries int32
	}{
		{"business error throws", NewInvalidInputError("bad", ""), 3, ActionThrow, 0},
		{"retryable with budget fails", NewEventsFetchFailedError(stderrors.New("x")), 3, ActionFail, 2},
		{"retryable capped by job", NewEventsFetchFailedError(stderrors.New("x")), 1, ActionFail, 0},
		{"retryable without budget throws", NewEventsFetchFailedError(stderrors.New("x")), 0, ActionThrow, 0},
		{"timeout uses partial retries", NewSearchTimeoutError("verified_vendors"), 5, ActionFail, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, retries := Decide(tt.err, tt.jobRetries)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedRetries, retries)
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "STORE", GetErrorCategory(ErrCodeVendorsFetchFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
