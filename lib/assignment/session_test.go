package assignment

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"vms-console/lib/utils/optimistic"
	"vms-console/lib/vmsclient"
	"vms-console/lib/vmsclient/vmstest"
	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
)

type toastRecorder struct {
	mu     sync.Mutex
	toasts []string
	codes  []models.ToastCode
}

func (r *toastRecorder) notify(code models.ToastCode, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
	r.toasts = append(r.toasts, msg)
}

func (r *toastRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}

func vendors(n int) []vmsapimodels.Vendor {
	result := make([]vmsapimodels.Vendor, 0, n)
	for i := 1; i <= n; i++ {
		result = append(result, vmsapimodels.Vendor{
			ID:       fmt.Sprintf("V%v", i),
			Username: fmt.Sprintf("vendor%v", i),
			Email:    fmt.Sprintf("vendor%v@x.com", i),
		})
	}
	return result
}

func ids(list []vmsapimodels.Vendor) []string {
	result := make([]string, 0, len(list))
	for _, v := range list {
		result = append(result, v.ID)
	}
	return result
}

type fixture struct {
	server  *vmstest.Server
	tracker *optimistic.Tracker
	toasts  *toastRecorder
	session *Session
}

func newFixture(t *testing.T, rollback bool, universe []vmsapimodels.Vendor, assigned []vmsapimodels.Vendor) fixture {
	server := vmstest.New(t)
	server.SetVendors(universe...)
	server.SetJobs(vmsapimodels.JobDescription{
		ID:              "J1",
		Title:           "Go developer",
		AssignedVendors: assigned,
	})
	tracker := optimistic.NewTracker(5*time.Second, rollback)
	toasts := &toastRecorder{}
	client := server.Client(vmsclient.StaticSession("s1", "token"))
	return fixture{
		server:  server,
		tracker: tracker,
		toasts:  toasts,
		session: NewSession(client, tracker, toasts.notify, 1000),
	}
}

func requireInvariant(t *testing.T, universe []vmsapimodels.Vendor, snapshot Snapshot) {
	seen := map[string]int{}
	for _, v := range snapshot.Assigned {
		seen[v.ID]++
	}
	for _, v := range snapshot.Unassigned {
		seen[v.ID]++
	}
	require.Len(t, seen, len(universe))
	for _, v := range universe {
		require.Equal(t, 1, seen[v.ID], "vendor %v must be in exactly one partition", v.ID)
	}
}

func TestTransitions(t *testing.T) {
	require.True(t, IsTransitionAllowed(StateClosed, StateLoading))
	require.True(t, IsTransitionAllowed(StateLoading, StateReady))
	require.True(t, IsTransitionAllowed(StateLoading, StateClosed))
	require.True(t, IsTransitionAllowed(StateReady, StateClosed))
	require.False(t, IsTransitionAllowed(StateClosed, StateReady))
	require.False(t, IsTransitionAllowed(StateReady, StateLoading))
}

func TestPartition(t *testing.T) {
	universe := vendors(6)
	cases := [][]int{{}, {0}, {1, 3}, {0, 1, 2, 3, 4, 5}, {5, 0}}
	for _, c := range cases {
		assigned := []vmsapimodels.Vendor{}
		for _, idx := range c {
			assigned = append(assigned, vmsapimodels.Vendor{ID: universe[idx].ID})
		}
		t.Run(fmt.Sprintf("assigned %v", c), func(t *testing.T) {
			a, u := Partition(universe, assigned)
			require.Equal(t, ids(assigned), ids(a))
			requireInvariant(t, universe, Snapshot{Assigned: a, Unassigned: u})
			for _, v := range a {
				require.NotEmpty(t, v.Username, "assigned vendor data taken from universe")
			}
		})
	}

	t.Run("duplicates in assigned are dropped", func(t *testing.T) {
		a, u := Partition(universe, []vmsapimodels.Vendor{universe[0], universe[0]})
		require.Equal(t, []string{"V1"}, ids(a))
		require.Len(t, u, 5)
	})
}

func TestSession(t *testing.T) {
	t.Run("open partitions the universe", func(t *testing.T) {
		universe := vendors(5)
		f := newFixture(t, true, universe, []vmsapimodels.Vendor{universe[1], universe[3]})
		snapshot, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)
		require.Equal(t, StateReady, snapshot.State)
		require.Equal(t, "Go developer", snapshot.JobTitle)
		require.Equal(t, []string{"V2", "V4"}, ids(snapshot.Assigned))
		require.Equal(t, []string{"V1", "V3", "V5"}, ids(snapshot.Unassigned))
		requireInvariant(t, universe, snapshot)
		require.Len(t, f.server.Requests(http.MethodGet, "/api/vendor/vendors"), 1)
		require.Equal(t, "page=1&limit=1000", f.server.Requests(http.MethodGet, "/api/vendor/vendors")[0].Query)
	})

	t.Run("open failure leaves session closed", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, true, universe, nil)
		f.server.Fail(http.MethodGet, "/api/vendor/vendors", http.StatusInternalServerError)
		_, err := f.session.Open(context.Background(), "J1")
		require.Error(t, err)
		require.True(t, vmsclient.IsRemote(err))
		snapshot := f.session.Snapshot()
		require.Equal(t, StateClosed, snapshot.State)
		require.Empty(t, snapshot.Assigned)
		require.Empty(t, snapshot.Unassigned)

		_, _, err = f.session.Assign("V1")
		require.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("assign moves vendor and is idempotent", func(t *testing.T) {
		universe := vendors(4)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)

		snapshot, changed, err := f.session.Assign("V2")
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, []string{"V2"}, ids(snapshot.Assigned))
		require.NotContains(t, ids(snapshot.Unassigned), "V2")
		requireInvariant(t, universe, snapshot)

		snapshot, changed, err = f.session.Assign("V2")
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, []string{"V2"}, ids(snapshot.Assigned))

		f.tracker.Wait()
		requests := f.server.Requests(http.MethodPut, "/api/admin/assign-vendor")
		require.Len(t, requests, 1)
		require.Equal(t, "J1", requests[0].JSON()["jobId"])
		require.Equal(t, "V2", requests[0].JSON()["vendorId"])
		require.Equal(t, 0, f.toasts.count())
	})

	t.Run("local state changes before confirmation lands", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)

		release := f.server.Hold(http.MethodPut, "/api/admin/assign-vendor")
		snapshot, changed, err := f.session.Assign("V1")
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, []string{"V1"}, ids(snapshot.Assigned))
		require.Equal(t, []string{"V1"}, ids(f.session.Snapshot().Assigned))
		release()
		f.tracker.Wait()
	})

	t.Run("unassign is symmetric", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, true, universe, []vmsapimodels.Vendor{universe[0]})
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)

		snapshot, changed, err := f.session.Unassign("V1")
		require.NoError(t, err)
		require.True(t, changed)
		require.Empty(t, snapshot.Assigned)
		require.Equal(t, []string{"V2", "V3", "V1"}, ids(snapshot.Unassigned))

		_, changed, err = f.session.Unassign("V1")
		require.NoError(t, err)
		require.False(t, changed)
		f.tracker.Wait()
		require.Len(t, f.server.Requests(http.MethodPut, "/api/admin/unassign-vendor"), 1)
	})

	t.Run("failed confirmation is compensated", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)
		f.server.Fail(http.MethodPut, "/api/admin/assign-vendor", http.StatusInternalServerError)

		snapshot, _, err := f.session.Assign("V3")
		require.NoError(t, err)
		require.Equal(t, []string{"V3"}, ids(snapshot.Assigned))
		f.tracker.Wait()

		snapshot = f.session.Snapshot()
		require.Empty(t, snapshot.Assigned)
		requireInvariant(t, universe, snapshot)
		require.Equal(t, 1, f.toasts.count())
		require.Equal(t, models.ToastCodeStateConflict, f.toasts.codes[0])
		require.Contains(t, f.toasts.toasts[0], "reverted")
	})

	t.Run("failed confirmation kept when rollback disabled", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, false, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)
		f.server.Fail(http.MethodPut, "/api/admin/assign-vendor", http.StatusInternalServerError)

		_, _, err = f.session.Assign("V3")
		require.NoError(t, err)
		f.tracker.Wait()
		require.Equal(t, []string{"V3"}, ids(f.session.Snapshot().Assigned))
		require.Equal(t, 1, f.toasts.count())
	})

	t.Run("superseded failure is not compensated", func(t *testing.T) {
		universe := vendors(3)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)
		f.server.Fail(http.MethodPut, "/api/admin/assign-vendor", http.StatusInternalServerError)
		release := f.server.Hold(http.MethodPut, "/api/admin/assign-vendor")

		_, _, err = f.session.Assign("V1")
		require.NoError(t, err)
		snapshot, changed, err := f.session.Unassign("V1")
		require.NoError(t, err)
		require.True(t, changed)
		require.Empty(t, snapshot.Assigned)
		release()
		f.tracker.Wait()

		snapshot = f.session.Snapshot()
		require.Empty(t, snapshot.Assigned, "later unassign wins over failed assign")
		requireInvariant(t, universe, snapshot)
	})

	t.Run("close does not cancel confirmations and drops compensation", func(t *testing.T) {
		universe := vendors(2)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)
		f.server.Fail(http.MethodPut, "/api/admin/assign-vendor", http.StatusInternalServerError)
		release := f.server.Hold(http.MethodPut, "/api/admin/assign-vendor")

		_, _, err = f.session.Assign("V1")
		require.NoError(t, err)
		f.session.Close()
		require.Equal(t, StateClosed, f.session.State())
		release()
		f.tracker.Wait()

		require.Len(t, f.server.Requests(http.MethodPut, "/api/admin/assign-vendor"), 1)
		snapshot := f.session.Snapshot()
		require.Equal(t, StateClosed, snapshot.State)
		require.Empty(t, snapshot.Assigned)
		require.Empty(t, snapshot.Unassigned)
	})

	t.Run("close during loading discards result", func(t *testing.T) {
		universe := vendors(2)
		f := newFixture(t, true, universe, nil)
		release := f.server.Hold(http.MethodGet, "/api/vendor/vendors")
		done := make(chan error, 1)
		go func() {
			_, err := f.session.Open(context.Background(), "J1")
			done <- err
		}()
		require.Eventually(t, func() bool {
			return f.session.State() == StateLoading
		}, time.Second, 5*time.Millisecond)
		f.session.Close()
		release()
		require.ErrorIs(t, <-done, ErrSuperseded)
		require.Equal(t, StateClosed, f.session.State())
	})

	t.Run("send email uses session job", func(t *testing.T) {
		universe := vendors(2)
		f := newFixture(t, true, universe, nil)
		_, err := f.session.Open(context.Background(), "J1")
		require.NoError(t, err)

		require.NoError(t, f.session.SendEmail(context.Background(), "V2"))
		requests := f.server.Requests(http.MethodPost, "/api/admin/send-email")
		require.Len(t, requests, 1)
		body := requests[0].JSON()
		require.Equal(t, "V2", body["vendorId"])
		require.Equal(t, "J1", body["jobId"])
		require.Equal(t, "Go developer", body["jobTitle"])

		require.ErrorIs(t, f.session.SendEmail(context.Background(), "missing"), ErrUnknownUser)
	})
}
