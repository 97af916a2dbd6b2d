package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tdhttp "github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

func newTestProxiesClient(serverURL string, pollInterval time.Duration, maxAttempts int) *ProxiesClient {
	proxies := NewProxiesClient(tdhttp.NewClient(serverURL, nil))
	proxies.pollInterval = pollInterval
	proxies.maxAttempts = maxAttempts

	return proxies
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestProxiesClient_Get(t *testing.T) {
	t.Parallel()
	t.Run("returns the first proxy when available immediately", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v2/proxy-plugin/proxies", request.URL.Path)

			var where map[string]interface{}

			err := json.Unmarshal([]byte(request.URL.Query().Get("where")), &where)
			require.NoError(t, err)
			assert.Equal(t, "adb", where["type"])
			assert.InDelta(t, float64(1000), where["sessionId"], 0)

			response := []testdroid.ProxySession{
				{Type: "adb", Host: "proxy-1.bitbar.com", Port: 30001, SessionID: 1000},
				{Type: "adb", Host: "proxy-2.bitbar.com", Port: 30002, SessionID: 1000},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		proxies := newTestProxiesClient(server.URL, time.Millisecond, 3)

		proxy, err := proxies.Get(context.Background(), testdroid.ProxyTypeADB, 1000)
		require.NoError(t, err)
		assert.Equal(t, "proxy-1.bitbar.com", proxy.Host)
		assert.Equal(t, 30001, proxy.Port)
	})

	t.Run("polls until the proxy appears", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if calls.Add(1) < 3 {
				_ = json.NewEncoder(writer).Encode([]testdroid.ProxySession{})

				return
			}

			response := []testdroid.ProxySession{
				{Type: "marionette", Host: "proxy.bitbar.com", Port: 31000, SessionID: 1000},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		proxies := newTestProxiesClient(server.URL, time.Millisecond, 10)

		proxy, err := proxies.Get(context.Background(), testdroid.ProxyTypeMarionette, 1000)
		require.NoError(t, err)
		assert.Equal(t, 31000, proxy.Port)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("times out after the retry budget", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			_ = json.NewEncoder(writer).Encode([]testdroid.ProxySession{})
		}))
		defer server.Close()

		proxies := newTestProxiesClient(server.URL, time.Millisecond, 5)

		proxy, err := proxies.Get(context.Background(), testdroid.ProxyTypeADB, 1000)
		require.Error(t, err)
		assert.Nil(t, proxy)

		timeoutErr := &testdroid.ProxyTimeoutError{}
		require.True(t, errors.As(err, &timeoutErr))
		assert.Equal(t, "adb", timeoutErr.Type)
		assert.Equal(t, int64(1000), timeoutErr.SessionID)
		assert.Equal(t, 5, timeoutErr.Attempts)
		assert.Equal(t, int32(5), calls.Load())
	})

	t.Run("honors context cancellation between polls", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode([]testdroid.ProxySession{})
		}))
		defer server.Close()

		proxies := newTestProxiesClient(server.URL, time.Second, 30)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		proxy, err := proxies.Get(ctx, testdroid.ProxyTypeADB, 1000)
		require.Error(t, err)
		assert.Nil(t, proxy)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects unknown proxy types", func(t *testing.T) {
		t.Parallel()

		proxies := newTestProxiesClient("http://example.invalid", time.Millisecond, 3)

		proxy, err := proxies.Get(context.Background(), "vnc", 1000)
		require.Error(t, err)
		assert.Nil(t, proxy)
		assert.ErrorIs(t, err, testdroid.ErrInvalidProxyType)
		assert.Contains(t, err.Error(), "vnc")
	})

	t.Run("propagates search errors without retrying", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		proxies := newTestProxiesClient(server.URL, time.Millisecond, 5)

		proxy, err := proxies.Get(context.Background(), testdroid.ProxyTypeADB, 1000)
		require.Error(t, err)
		assert.Nil(t, proxy)
		assert.True(t, testdroid.IsRequestError(err))
		assert.Equal(t, int32(1), calls.Load())
	})
}
