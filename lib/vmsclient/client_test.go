package vmsclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	vmsapimodels "vms-console/models/api/vms"
	dbmodels "vms-console/models/db"
)

type auditRecorder struct {
	mu   sync.Mutex
	recs []dbmodels.ApiAudit
}

func (a *auditRecorder) Create(rec dbmodels.ApiAudit) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recs = append(a.recs, rec)
	return "id", nil
}

func (a *auditRecorder) ListBySession(sessionID string, limit int) ([]dbmodels.ApiAudit, error) {
	return nil, nil
}

func (a *auditRecorder) DeleteOlderThan(before time.Time) (int64, error) {
	return 0, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, audit *auditRecorder) Provider {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	options := Options{
		Host:    srv.URL,
		Timeout: 5 * time.Second,
	}
	if audit != nil {
		options.AuditStore = audit
	}
	return NewWithOptions(options, StaticSession("s1", "remote-token"))
}

func TestClient(t *testing.T) {
	t.Run("list jobs with bearer token", func(t *testing.T) {
		var gotAuth, gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"_id":"J1","title":"Go dev","verified":true,"assignedVendors":[{"_id":"V1","username":"v1"}]}]`))
		}, nil)
		jobs, err := client.ListJobs(context.Background(), 1, 1000)
		require.NoError(t, err)
		require.Equal(t, "Bearer remote-token", gotAuth)
		require.Equal(t, "page=1&limit=1000", gotQuery)
		require.Len(t, jobs, 1)
		require.Equal(t, "J1", jobs[0].ID)
		require.True(t, jobs[0].Verified)
		require.Equal(t, []string{"v1"}, jobs[0].VendorUsernames())
	})

	t.Run("anonymous call has no authorization header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"token":"abc"}`))
		}))
		defer srv.Close()
		client := NewWithOptions(Options{Host: srv.URL, Timeout: time.Second}, nil)
		resp, err := client.Login(context.Background(), vmsapimodels.LoginRequest{Username: "admin", Password: "Secret1!"})
		require.NoError(t, err)
		require.Equal(t, "abc", resp.Token)
	})

	t.Run("non 2xx is HttpError and audited", func(t *testing.T) {
		audit := &auditRecorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"Vendor already assigned"}`))
		}, audit)
		err := client.AssignVendor(context.Background(), "J1", "V1")
		require.Error(t, err)
		httpErr, ok := AsHttpError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusConflict, httpErr.Status)
		require.Equal(t, "Vendor already assigned", httpErr.Message)
		require.False(t, IsNetworkFailure(err))
		require.True(t, IsRemote(err))
		require.Equal(t, "Vendor already assigned", UserMessage(err, "fallback"))

		require.Len(t, audit.recs, 1)
		rec := audit.recs[0]
		require.Equal(t, "s1", rec.SessionID)
		require.Equal(t, "jobs.assign_vendor", rec.Operation)
		require.Equal(t, http.MethodPut, rec.Method)
		require.Equal(t, http.StatusConflict, rec.Status)
		require.JSONEq(t, `{"jobId":"J1","vendorId":"V1"}`, rec.Request)
	})

	t.Run("unreachable host is NetworkFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		host := srv.URL
		srv.Close()
		audit := &auditRecorder{}
		client := NewWithOptions(Options{Host: host, Timeout: time.Second, AuditStore: audit}, Anonymous)
		_, err := client.ListVendors(context.Background(), 1, 10)
		require.Error(t, err)
		require.True(t, IsNetworkFailure(err))
		_, ok := AsHttpError(err)
		require.False(t, ok)
		require.Equal(t, "fallback", UserMessage(err, "fallback"))
		require.Len(t, audit.recs, 1)
		require.Equal(t, 0, audit.recs[0].Status)
	})

	t.Run("vendor list accepts object and array", func(t *testing.T) {
		body := `{"vendors":[{"_id":"V1","username":"v1"}],"totalVendors":7}`
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}, nil)
		resp, err := client.ListVendors(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Equal(t, int64(7), resp.TotalVendors)
		require.Len(t, resp.Vendors, 1)

		body = `[{"_id":"V1"},{"_id":"V2"}]`
		resp, err = client.ListVendors(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Equal(t, int64(2), resp.TotalVendors)
		require.Equal(t, "V2", resp.Vendors[1].ID)
	})

	t.Run("job status sends negated payload", func(t *testing.T) {
		var payload map[string]interface{}
		var path string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &payload)
		}, nil)
		err := client.UpdateJobStatus(context.Background(), "J1", false)
		require.NoError(t, err)
		require.Equal(t, "/api/admin/J1/update-status", path)
		require.Equal(t, false, payload["verified"])
		require.Equal(t, "J1", payload["id"])
	})

	t.Run("profile update is multipart", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "admin", r.FormValue("username"))
			require.Equal(t, "9876543210", r.FormValue("mobile"))
			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			require.Equal(t, "me.png", header.Filename)
			w.Write([]byte(`{"admin":{"_id":"A1","username":"admin","mobile":"9876543210"}}`))
		}, nil)
		profile, err := client.UpdateProfile(context.Background(), vmsapimodels.ProfileUpdateRequest{
			AdminID:   "A1",
			Username:  "admin",
			Email:     "admin@x.com",
			Mobile:    "9876543210",
			Location:  "Pune",
			ImageName: "me.png",
			Image:     []byte{0x89, 'P', 'N', 'G'},
		})
		require.NoError(t, err)
		require.Equal(t, "A1", profile.ID)
	})
}
