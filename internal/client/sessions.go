package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// DeviceSessionsClient implements testdroid.DeviceSessionsClient.
type DeviceSessionsClient struct {
	httpClient *http.Client
}

// NewDeviceSessionsClient creates a new device sessions client.
func NewDeviceSessionsClient(httpClient *http.Client) *DeviceSessionsClient {
	return &DeviceSessionsClient{
		httpClient: httpClient,
	}
}

// Start implements testdroid.DeviceSessionsClient.Start.
func (c *DeviceSessionsClient) Start(ctx context.Context, deviceModelID int64) (*testdroid.DeviceSession, error) {
	form := url.Values{}
	form.Set("deviceModelId", strconv.FormatInt(deviceModelID, 10))

	resp, err := c.httpClient.Post(ctx, constants.APIPrefix+"/me/device-sessions", form)
	if err != nil {
		return nil, fmt.Errorf("starting device session for device %d: %w", deviceModelID, err)
	}

	var session testdroid.DeviceSession

	err = json.Unmarshal(resp.Body, &session)
	if err != nil {
		return nil, fmt.Errorf("parsing device session: %w", err)
	}

	return &session, nil
}

// Stop implements testdroid.DeviceSessionsClient.Stop, releasing the claim
// on the device.
func (c *DeviceSessionsClient) Stop(ctx context.Context, sessionID int64) error {
	path := fmt.Sprintf("%s/me/device-sessions/%d/release", constants.APIPrefix, sessionID)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("releasing device session %d: %w", sessionID, err)
	}

	return nil
}
