package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tdhttp "github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

func newTestDeviceSessionsClient(serverURL string) *DeviceSessionsClient {
	return NewDeviceSessionsClient(tdhttp.NewClient(serverURL, nil))
}

func TestDeviceSessionsClient_Start(t *testing.T) {
	t.Parallel()
	t.Run("posts the device model id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/api/v2/me/device-sessions", request.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			err := request.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "42", request.Form.Get("deviceModelId"))

			writer.WriteHeader(http.StatusCreated)

			response := testdroid.DeviceSession{
				ID:     1000,
				State:  testdroid.DeviceSessionStateRunning,
				Device: &testdroid.Device{ID: 42, DisplayName: "Nexus 5"},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		sessions := newTestDeviceSessionsClient(server.URL)

		session, err := sessions.Start(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), session.ID)
		assert.Equal(t, testdroid.DeviceSessionStateRunning, session.State)
		require.NotNil(t, session.Device)
		assert.Equal(t, int64(42), session.Device.ID)
	})

	t.Run("surfaces the server message when the device is taken", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error_message": "Device is locked by another session",
			})
		}))
		defer server.Close()

		sessions := newTestDeviceSessionsClient(server.URL)

		session, err := sessions.Start(context.Background(), 42)
		require.Error(t, err)
		assert.Nil(t, session)

		reqErr := &testdroid.RequestError{}
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "Device is locked by another session", reqErr.Message)
	})
}

func TestDeviceSessionsClient_Stop(t *testing.T) {
	t.Parallel()
	t.Run("posts to the release endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/api/v2/me/device-sessions/1000/release", request.URL.Path)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		sessions := newTestDeviceSessionsClient(server.URL)

		err := sessions.Stop(context.Background(), 1000)
		require.NoError(t, err)
	})

	t.Run("surfaces release failures", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error_message": "Device session not found",
			})
		}))
		defer server.Close()

		sessions := newTestDeviceSessionsClient(server.URL)

		err := sessions.Stop(context.Background(), 1000)
		require.Error(t, err)
		assert.True(t, testdroid.IsNotFound(err))
		assert.Contains(t, err.Error(), "releasing device session 1000")
	})
}
