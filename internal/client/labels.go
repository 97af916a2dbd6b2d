package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// LabelGroupsClient implements testdroid.LabelGroupsClient.
type LabelGroupsClient struct {
	httpClient *http.Client
}

// NewLabelGroupsClient creates a new label groups client.
func NewLabelGroupsClient(httpClient *http.Client) *LabelGroupsClient {
	return &LabelGroupsClient{
		httpClient: httpClient,
	}
}

// GetGroup implements testdroid.LabelGroupsClient.GetGroup. The server's
// search query returns all candidates containing the name; the first exact
// display-name match wins.
func (c *LabelGroupsClient) GetGroup(ctx context.Context, name string) (*testdroid.LabelGroup, error) {
	if name == "" {
		return nil, testdroid.ErrLabelNameRequired
	}

	query := url.Values{}
	query.Set("search", name)

	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/label-groups", query)
	if err != nil {
		return nil, fmt.Errorf("searching label groups: %w", err)
	}

	var list testdroid.ListResponse[testdroid.LabelGroup]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing label group list: %w", err)
	}

	for i := range list.Data {
		if list.Data[i].DisplayName == name {
			return &list.Data[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", testdroid.ErrLabelGroupNotFound, name)
}

// GetLabel implements testdroid.LabelGroupsClient.GetLabel.
func (c *LabelGroupsClient) GetLabel(ctx context.Context, name string, group *testdroid.LabelGroup) (*testdroid.Label, error) {
	if name == "" {
		return nil, testdroid.ErrLabelNameRequired
	}

	if group == nil {
		return nil, testdroid.ErrLabelGroupRequired
	}

	query := url.Values{}
	query.Set("search", name)

	path := fmt.Sprintf("%s/label-groups/%d/labels", constants.APIPrefix, group.ID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("searching labels in group %q: %w", group.DisplayName, err)
	}

	var list testdroid.ListResponse[testdroid.Label]

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing label list: %w", err)
	}

	for i := range list.Data {
		if list.Data[i].DisplayName == name {
			return &list.Data[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s in group %s", testdroid.ErrLabelNotFound, name, group.DisplayName)
}
