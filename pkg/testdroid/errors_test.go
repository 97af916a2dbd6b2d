package testdroid_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

func TestAuthError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *testdroid.AuthError
		expected string
	}{
		{
			name:     "code and description",
			err:      &testdroid.AuthError{Code: "invalid_grant", Description: "Bad credentials"},
			expected: "authentication failed: invalid_grant: Bad credentials",
		},
		{
			name:     "description only",
			err:      &testdroid.AuthError{Description: "Bad credentials"},
			expected: "authentication failed: Bad credentials",
		},
		{
			name:     "code only",
			err:      &testdroid.AuthError{Code: "invalid_grant"},
			expected: "authentication failed: invalid_grant",
		},
		{
			name:     "status code fallback",
			err:      &testdroid.AuthError{StatusCode: 401},
			expected: "authentication failed with status 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestRequestError_Error(t *testing.T) {
	t.Parallel()

	withMessage := &testdroid.RequestError{StatusCode: 404, Message: "Device session not found"}
	assert.Equal(t, "request failed with status 404: Device session not found", withMessage.Error())

	withoutMessage := &testdroid.RequestError{StatusCode: 500}
	assert.Equal(t, "request failed with status 500", withoutMessage.Error())
}

func TestProxyTimeoutError_Error(t *testing.T) {
	t.Parallel()

	err := &testdroid.ProxyTimeoutError{Type: "adb", SessionID: 1000, Attempts: 30}
	assert.Equal(t, "no adb proxy available for session 1000 after 30 attempts", err.Error())
}

func TestParseRequestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "error_message field",
			body:     `{"error_message": "Device is locked"}`,
			expected: "Device is locked",
		},
		{
			name:     "message field",
			body:     `{"message": "Not found"}`,
			expected: "Not found",
		},
		{
			name:     "error_message wins over message",
			body:     `{"error_message": "primary", "message": "secondary"}`,
			expected: "primary",
		},
		{
			name:     "raw body fallback",
			body:     "  plain text error\n",
			expected: "plain text error",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := testdroid.ParseRequestError(400, []byte(tt.body))
			assert.Equal(t, 400, err.StatusCode)
			assert.Equal(t, tt.expected, err.Message)
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()
	t.Run("IsAuthError", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("getting token: %w", &testdroid.AuthError{Code: "invalid_grant"})
		assert.True(t, testdroid.IsAuthError(wrapped))
		assert.False(t, testdroid.IsAuthError(errors.New("other")))
	})

	t.Run("IsRequestError", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("listing devices: %w", &testdroid.RequestError{StatusCode: 500})
		assert.True(t, testdroid.IsRequestError(wrapped))
		assert.False(t, testdroid.IsRequestError(errors.New("other")))
	})

	t.Run("IsNotFound matches lookup sentinels", func(t *testing.T) {
		t.Parallel()

		assert.True(t, testdroid.IsNotFound(fmt.Errorf("%w: smoke", testdroid.ErrProjectNotFound)))
		assert.True(t, testdroid.IsNotFound(fmt.Errorf("%w: foo", testdroid.ErrLabelGroupNotFound)))
		assert.True(t, testdroid.IsNotFound(fmt.Errorf("%w: bar", testdroid.ErrLabelNotFound)))
	})

	t.Run("IsNotFound matches 404 responses", func(t *testing.T) {
		t.Parallel()

		assert.True(t, testdroid.IsNotFound(&testdroid.RequestError{StatusCode: http.StatusNotFound}))
		assert.False(t, testdroid.IsNotFound(&testdroid.RequestError{StatusCode: http.StatusBadRequest}))
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		t.Parallel()

		assert.True(t, testdroid.IsUnauthorized(&testdroid.RequestError{StatusCode: http.StatusUnauthorized}))
		assert.True(t, testdroid.IsUnauthorized(&testdroid.AuthError{Code: "invalid_grant"}))
		assert.False(t, testdroid.IsUnauthorized(&testdroid.RequestError{StatusCode: http.StatusForbidden}))
		assert.False(t, testdroid.IsUnauthorized(errors.New("other")))
	})
}
