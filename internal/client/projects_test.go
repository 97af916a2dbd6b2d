package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tdhttp "github.com/bitbar/testdroid-go/internal/http"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

func newTestProjectsClient(serverURL string) *ProjectsClient {
	return NewProjectsClient(tdhttp.NewClient(serverURL, nil))
}

func TestProjectsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v2/me/projects", request.URL.Path)
		assert.Equal(t, "5", request.URL.Query().Get("limit"))

		response := testdroid.ProjectList{
			Total: 2,
			Data: []testdroid.Project{
				{ID: 1, Name: "smoke-tests", Type: "APPIUM_ANDROID"},
				{ID: 2, Name: "nightly", Type: "XCTEST"},
			},
		}
		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	projects := newTestProjectsClient(server.URL)

	list, err := projects.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "smoke-tests", list.Data[0].Name)
}

func TestProjectsClient_Get(t *testing.T) {
	t.Parallel()
	t.Run("returns the exact match among search candidates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v2/me/projects", request.URL.Path)
			assert.Equal(t, "0", request.URL.Query().Get("limit"))
			assert.Equal(t, "smoke", request.URL.Query().Get("search"))

			response := testdroid.ProjectList{
				Total: 2,
				Data: []testdroid.Project{
					{ID: 1, Name: "smoke-tests"},
					{ID: 2, Name: "smoke"},
				},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		projects := newTestProjectsClient(server.URL)

		project, err := projects.Get(context.Background(), "smoke")
		require.NoError(t, err)
		assert.Equal(t, int64(2), project.ID)
		assert.Equal(t, "smoke", project.Name)
	})

	t.Run("substring-only candidates are not a match", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			response := testdroid.ProjectList{
				Total: 1,
				Data:  []testdroid.Project{{ID: 1, Name: "smoke-tests"}},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		projects := newTestProjectsClient(server.URL)

		project, err := projects.Get(context.Background(), "smoke")
		require.Error(t, err)
		assert.Nil(t, project)
		assert.ErrorIs(t, err, testdroid.ErrProjectNotFound)
		assert.Contains(t, err.Error(), "smoke")
	})
}

func TestProjectsClient_CreateTestRun(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/api/v2/me/projects/42/runs", request.URL.Path)

		writer.WriteHeader(http.StatusCreated)

		response := testdroid.TestRun{
			ID:          900,
			DisplayName: "Test Run 1",
			State:       "WAITING",
			ProjectID:   42,
		}
		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	projects := newTestProjectsClient(server.URL)

	run, err := projects.CreateTestRun(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(900), run.ID)
	assert.Equal(t, "WAITING", run.State)
	assert.Equal(t, int64(42), run.ProjectID)
}

func TestProjectsClient_ListTestRuns(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "/api/v2/me/projects/42/runs", request.URL.Path)
		assert.Equal(t, "0", request.URL.Query().Get("limit"))

		response := testdroid.TestRunList{
			Total: 1,
			Data: []testdroid.TestRun{
				{ID: 900, DisplayName: "Test Run 1", State: "FINISHED", ProjectID: 42},
			},
		}
		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	projects := newTestProjectsClient(server.URL)

	list, err := projects.ListTestRuns(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "FINISHED", list.Data[0].State)
}
