package apiv1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"vms-console/lib/workspace"
	"vms-console/models"
	apimodels "vms-console/models/api"
	jobapimodels "vms-console/models/api/job"
)

type jobPageResponse struct {
	apimodels.ScrollerResponse
	Data jobapimodels.JobPage `json:"data"`
}

type jobResponse struct {
	apimodels.Response
	Data jobapimodels.JobView `json:"data"`
}

func TestJobsApi(t *testing.T) {
	t.Run("token is required", func(t *testing.T) {
		app, _ := newConsoleApp(t)
		status := doJSON(t, app, http.MethodGet, "/jobs", "", nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("vendors cannot manage jobs", func(t *testing.T) {
		app, _ := newConsoleApp(t)
		status := doJSON(t, app, http.MethodGet, "/jobs", tokenFor(t, models.VendorRole), nil)
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("list is filtered and rendered", func(t *testing.T) {
		app, _ := newConsoleApp(t)
		var resp jobPageResponse
		status := doJSON(t, app, http.MethodGet, "/jobs?search=go", tokenFor(t, models.AdminRole), &resp)
		require.Equal(t, http.StatusOK, status)
		require.EqualValues(t, 1, resp.RowCount)
		require.Equal(t, 1, resp.PageCount)
		require.Len(t, resp.Data.Items, 1)
		require.Equal(t, "Go Developer", resp.Data.Items[0].Title)
		require.Len(t, resp.Data.Table.Rows, 1)
		require.Equal(t, "J1", resp.Data.Table.Rows[0].ID)
	})

	t.Run("toggle answers with the new value", func(t *testing.T) {
		app, server := newConsoleApp(t)
		token := tokenFor(t, models.AdminRole)
		require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/jobs", token, nil))

		var resp jobResponse
		status := doJSON(t, app, http.MethodPut, "/jobs/J1/verified", token, &resp)
		require.Equal(t, http.StatusOK, status)
		require.True(t, resp.Data.Verified)

		workspace.Instance.WaitAll()
		require.Len(t, server.Requests(http.MethodPut, "/api/admin/J1/update-status"), 1)
	})

	t.Run("unknown job", func(t *testing.T) {
		app, _ := newConsoleApp(t)
		status := doJSON(t, app, http.MethodPut, "/jobs/missing/verified", tokenFor(t, models.AdminRole), nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}
