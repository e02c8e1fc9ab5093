package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUpstreamUnavailable,
		ErrUpstreamStatus,
		ErrMalformedResponse,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestUpstreamUnavailableError(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			service:     "inspiration",
			reason:      "connection refused",
			expectedMsg: `upstream "inspiration" unavailable: connection refused`,
		},
		{
			name:        "without reason",
			service:     "inspiration",
			expectedMsg: `upstream "inspiration" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUpstreamUnavailableError(tt.service, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUpstreamUnavailable)

			var unavailable *UpstreamUnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.service, unavailable.Service)
			assert.Equal(t, tt.reason, unavailable.Reason)
		})
	}
}

func TestUpstreamStatusError(t *testing.T) {
	err := NewUpstreamStatusError("inspiration", 502)

	assert.Equal(t, `upstream "inspiration" returned HTTP 502`, err.Error())
	require.ErrorIs(t, err, ErrUpstreamStatus)

	var status *UpstreamStatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, 502, status.StatusCode)
	assert.Equal(t, ErrUpstreamStatus, status.Unwrap())
}

func TestMalformedResponseError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		field       string
		expectedMsg string
	}{
		{
			name:        "whole payload",
			err:         NewMalformedResponseError("inspiration", "invalid JSON"),
			expectedMsg: `malformed response from "inspiration": invalid JSON`,
		},
		{
			name:        "single field",
			err:         NewMalformedFieldError("inspiration", "author", "is missing"),
			field:       "author",
			expectedMsg: `malformed response from "inspiration": field author is missing`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			require.ErrorIs(t, tt.err, ErrMalformedResponse)

			var malformed *MalformedResponseError
			require.ErrorAs(t, tt.err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
		wantStatus      bool
		wantMalformed   bool
	}{
		{
			name:            "unavailable",
			err:             NewUpstreamUnavailableError("svc", "reset"),
			wantUnavailable: true,
		},
		{
			name:       "status",
			err:        NewUpstreamStatusError("svc", 500),
			wantStatus: true,
		},
		{
			name:          "malformed",
			err:           NewMalformedFieldError("svc", "quote", "is missing"),
			wantMalformed: true,
		},
		{
			name:            "wrapped unavailable",
			err:             fmt.Errorf("fetching quote: %w", NewUpstreamUnavailableError("svc", "")),
			wantUnavailable: true,
		},
		{
			name: "unrelated error",
			err:  fmt.Errorf("boom"),
		},
		{
			name: "nil",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUnavailable, IsUpstreamUnavailable(tt.err))
			assert.Equal(t, tt.wantStatus, IsUpstreamStatus(tt.err))
			assert.Equal(t, tt.wantMalformed, IsMalformedResponse(tt.err))
		})
	}
}
