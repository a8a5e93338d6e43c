package jobhandler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"vms-console/lib/vmsclient"
	"vms-console/lib/vmsclient/vmstest"
	"vms-console/lib/workspace"
	"vms-console/models"
	jobapimodels "vms-console/models/api/job"
	vmsapimodels "vms-console/models/api/vms"
	wsmodels "vms-console/models/ws"
)

type toasts struct {
	mu    sync.Mutex
	codes []models.ToastCode
	msgs  []string
}

func (t *toasts) notify(code models.ToastCode, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.codes = append(t.codes, code)
	t.msgs = append(t.msgs, msg)
}

func (t *toasts) last() (models.ToastCode, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.codes) == 0 {
		return "", ""
	}
	return t.codes[len(t.codes)-1], t.msgs[len(t.msgs)-1]
}

func newWorkspace(t *testing.T, server *vmstest.Server, rollback bool) (*workspace.Workspace, *toasts) {
	recorder := &toasts{}
	provider := workspace.NewProvider(workspace.Options{
		FetchLimit:     100,
		ConfirmTimeout: time.Second,
		Rollback:       rollback,
		NewClient: func(sess vmsclient.SessionContext) vmsclient.Provider {
			return server.Client(sess)
		},
		Notifier: func(sessionID string) wsmodels.Notify {
			return recorder.notify
		},
	})
	return provider.Get(vmsclient.StaticSession("s1", "token")), recorder
}

func jobs() []vmsapimodels.JobDescription {
	return []vmsapimodels.JobDescription{
		{ID: "J1", Title: "Go Developer", Description: "backend"},
		{ID: "J2", Title: "QA Engineer", Description: "tests", Verified: true},
		{ID: "J3", Title: "golang lead", Description: "lead"},
	}
}

func TestList(t *testing.T) {
	server := vmstest.New(t)
	server.SetJobs(jobs()...)
	ws, recorder := newWorkspace(t, server, true)
	handler := NewProvider(2)

	t.Run("filter and page from one list", func(t *testing.T) {
		page, err := handler.List(context.Background(), ws, jobapimodels.JobFilter{Search: "GO"})
		require.NoError(t, err)
		require.Equal(t, 2, page.Total)
		require.Equal(t, 1, page.PageCount)
		require.Equal(t, "J1", page.Items[0].ID)
		require.Equal(t, "J3", page.Items[1].ID)

		page, err = handler.List(context.Background(), ws, jobapimodels.JobFilter{})
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		require.Equal(t, 2, page.PageCount)
		require.Len(t, page.Items, 2)
		require.Len(t, server.Requests("GET", "/api/admin/job-descriptions"), 1)
	})

	t.Run("failed refresh keeps cache", func(t *testing.T) {
		server.Fail("GET", "/api/admin/job-descriptions", 500)
		defer server.Recover("GET", "/api/admin/job-descriptions")
		filter := jobapimodels.JobFilter{Refresh: true}
		_, err := handler.List(context.Background(), ws, filter)
		require.Error(t, err)
		code, _ := recorder.last()
		require.Equal(t, models.ToastCodeListLoadFailed, code)
		require.Len(t, ws.Jobs.Items(), 3)
	})
}

func TestToggleVerified(t *testing.T) {
	t.Run("local flip before confirmation", func(t *testing.T) {
		server := vmstest.New(t)
		server.SetJobs(jobs()...)
		ws, _ := newWorkspace(t, server, true)
		handler := NewProvider(5)
		release := server.Hold("PUT", "/api/admin/J1/update-status")

		updated, err := handler.ToggleVerified(context.Background(), ws, "J1")
		require.NoError(t, err)
		require.True(t, updated.Verified)
		cached, ok := ws.Jobs.Get("J1")
		require.True(t, ok)
		require.True(t, cached.Verified)

		release()
		ws.Wait()
		requests := server.Requests("PUT", "/api/admin/J1/update-status")
		require.Len(t, requests, 1)
		require.Equal(t, true, requests[0].JSON()["verified"])
		require.Equal(t, "J1", requests[0].JSON()["id"])
		require.True(t, server.Jobs()[0].Verified)
	})

	t.Run("failure reverts the flag", func(t *testing.T) {
		server := vmstest.New(t)
		server.SetJobs(jobs()...)
		ws, recorder := newWorkspace(t, server, true)
		handler := NewProvider(5)
		server.Fail("PUT", "/api/admin/J2/update-status", 500)

		updated, err := handler.ToggleVerified(context.Background(), ws, "J2")
		require.NoError(t, err)
		require.False(t, updated.Verified)
		ws.Wait()
		cached, _ := ws.Jobs.Get("J2")
		require.True(t, cached.Verified)
		code, msg := recorder.last()
		require.Equal(t, models.ToastCodeStateConflict, code)
		require.Equal(t, "Error updating job status", msg)
	})

	t.Run("failure without rollback keeps the flag", func(t *testing.T) {
		server := vmstest.New(t)
		server.SetJobs(jobs()...)
		ws, _ := newWorkspace(t, server, false)
		handler := NewProvider(5)
		server.Fail("PUT", "/api/admin/J1/update-status", 500)

		_, err := handler.ToggleVerified(context.Background(), ws, "J1")
		require.NoError(t, err)
		ws.Wait()
		cached, _ := ws.Jobs.Get("J1")
		require.True(t, cached.Verified)
	})

	t.Run("unknown job", func(t *testing.T) {
		server := vmstest.New(t)
		server.SetJobs(jobs()...)
		ws, _ := newWorkspace(t, server, true)
		_, err := NewProvider(5).ToggleVerified(context.Background(), ws, "J9")
		require.Error(t, err)
		require.Empty(t, server.Requests("PUT", "/api/admin/J9/update-status"))
	})
}

func TestMutations(t *testing.T) {
	server := vmstest.New(t)
	server.SetJobs(jobs()...)
	ws, _ := newWorkspace(t, server, true)
	handler := NewProvider(5)
	ctx := context.Background()

	t.Run("create validates and refreshes", func(t *testing.T) {
		err := handler.Create(ctx, ws, jobapimodels.JobData{})
		require.Error(t, err)
		require.Empty(t, server.Requests("POST", "/api/admin/create"))

		err = handler.Create(ctx, ws, jobapimodels.JobData{Title: "Rust", Description: "systems"})
		require.NoError(t, err)
		require.Len(t, server.Requests("POST", "/api/admin/create"), 1)
		_, ok := ws.Jobs.Get("JRust")
		require.True(t, ok)
	})

	t.Run("update keeps assigned vendors", func(t *testing.T) {
		server.SetJobs(vmsapimodels.JobDescription{
			ID:              "J1",
			Title:           "Go",
			Description:     "old",
			AssignedVendors: []vmsapimodels.Vendor{{ID: "V1", Username: "v1"}},
		})
		verified := true
		err := handler.Update(ctx, ws, "J1", jobapimodels.JobUpdate{
			JobData:  jobapimodels.JobData{Title: "Go", Description: "new"},
			Verified: &verified,
		})
		require.NoError(t, err)
		job := server.Jobs()[0]
		require.Equal(t, "new", job.Description)
		require.True(t, job.Verified)
		require.Len(t, job.AssignedVendors, 1)
		cached, _ := ws.Jobs.Get("J1")
		require.Equal(t, "new", cached.Description)
	})

	t.Run("delete refreshes", func(t *testing.T) {
		require.NoError(t, handler.Delete(ctx, ws, "J1"))
		_, ok := ws.Jobs.Get("J1")
		require.False(t, ok)
	})
}
