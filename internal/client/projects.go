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

// ProjectsClient implements testdroid.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements testdroid.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, limit int) (*testdroid.ProjectList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/me/projects", query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var list testdroid.ProjectList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing project list: %w", err)
	}

	return &list, nil
}

// Get implements testdroid.ProjectsClient.Get. The server search matches
// substrings, so candidates are narrowed to an exact name match here.
func (c *ProjectsClient) Get(ctx context.Context, name string) (*testdroid.Project, error) {
	query := url.Values{}
	query.Set("limit", "0")
	query.Set("search", name)

	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/me/projects", query)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}

	var list testdroid.ProjectList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing project list: %w", err)
	}

	for i := range list.Data {
		if list.Data[i].Name == name {
			return &list.Data[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", testdroid.ErrProjectNotFound, name)
}

// CreateTestRun implements testdroid.ProjectsClient.CreateTestRun.
func (c *ProjectsClient) CreateTestRun(ctx context.Context, projectID int64) (*testdroid.TestRun, error) {
	path := fmt.Sprintf("%s/me/projects/%d/runs", constants.APIPrefix, projectID)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating test run in project %d: %w", projectID, err)
	}

	var run testdroid.TestRun

	err = json.Unmarshal(resp.Body, &run)
	if err != nil {
		return nil, fmt.Errorf("parsing test run: %w", err)
	}

	return &run, nil
}

// ListTestRuns implements testdroid.ProjectsClient.ListTestRuns.
func (c *ProjectsClient) ListTestRuns(ctx context.Context, projectID int64, limit int) (*testdroid.TestRunList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("%s/me/projects/%d/runs", constants.APIPrefix, projectID)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing test runs for project %d: %w", projectID, err)
	}

	var list testdroid.TestRunList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing test run list: %w", err)
	}

	return &list, nil
}
