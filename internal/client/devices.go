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

// DevicesClient implements testdroid.DevicesClient.
type DevicesClient struct {
	httpClient *http.Client
}

// NewDevicesClient creates a new devices client.
func NewDevicesClient(httpClient *http.Client) *DevicesClient {
	return &DevicesClient{
		httpClient: httpClient,
	}
}

// List implements testdroid.DevicesClient.List. A limit of 0 requests the
// full unbounded inventory.
func (c *DevicesClient) List(ctx context.Context, limit int) (*testdroid.DeviceList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/devices", query)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	var list testdroid.DeviceList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing device list: %w", err)
	}

	return &list, nil
}

// FindByName implements testdroid.DevicesClient.FindByName. The API has no
// server-side name filter, so the full list is fetched and filtered here by
// exact display-name match.
func (c *DevicesClient) FindByName(ctx context.Context, name string) ([]testdroid.Device, error) {
	list, err := c.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("finding devices by name: %w", err)
	}

	var matches []testdroid.Device

	for _, device := range list.Data {
		if device.DisplayName == name {
			matches = append(matches, device)
		}
	}

	return matches, nil
}

// ListWithLabel implements testdroid.DevicesClient.ListWithLabel using the
// server-side label filter.
func (c *DevicesClient) ListWithLabel(ctx context.Context, labelID int64) (*testdroid.DeviceList, error) {
	if labelID == 0 {
		return nil, testdroid.ErrLabelIDRequired
	}

	query := url.Values{}
	query.Set("limit", "0")
	query.Set("label_id[]", strconv.FormatInt(labelID, 10))

	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/devices", query)
	if err != nil {
		return nil, fmt.Errorf("listing devices with label %d: %w", labelID, err)
	}

	var list testdroid.DeviceList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing device list: %w", err)
	}

	return &list, nil
}
