package workspace

import (
	"context"
	"sync"
	"time"

	"vms-console/lib/assignment"
	"vms-console/lib/entitylist"
	"vms-console/lib/utils/optimistic"
	"vms-console/lib/vmsclient"
	vmsapimodels "vms-console/models/api/vms"
	wsmodels "vms-console/models/ws"
)

// Workspace состояние одной сессии консоли: кэши списков и открытые назначения.
// Владелец всего, что в браузерной версии хранилось в компонентах
type Workspace struct {
	SessionID string
	Client    vmsclient.Provider
	Jobs      *entitylist.List[vmsapimodels.JobDescription]
	Vendors   *entitylist.List[vmsapimodels.Vendor]
	Tracker   *optimistic.Tracker
	Notify    wsmodels.Notify

	fetchLimit  int
	mu          sync.Mutex
	assignments map[string]*assignment.Session
	lastUsed    time.Time
}

func newWorkspace(sessionID string, client vmsclient.Provider, tracker *optimistic.Tracker, notify wsmodels.Notify, fetchLimit int) *Workspace {
	w := &Workspace{
		SessionID:   sessionID,
		Client:      client,
		Tracker:     tracker,
		Notify:      notify,
		fetchLimit:  fetchLimit,
		assignments: map[string]*assignment.Session{},
		lastUsed:    time.Now(),
	}
	w.Jobs = entitylist.New(func(ctx context.Context, query entitylist.Query) ([]vmsapimodels.JobDescription, error) {
		return client.ListJobs(ctx, query.Page, query.Limit)
	})
	w.Vendors = entitylist.New(func(ctx context.Context, query entitylist.Query) ([]vmsapimodels.Vendor, error) {
		resp, err := client.ListVendors(ctx, query.Page, query.Limit)
		if err != nil {
			return nil, err
		}
		return resp.Vendors, nil
	})
	return w
}

// ListQuery полная выгрузка списка, пагинация на стороне консоли
func (w *Workspace) ListQuery() entitylist.Query {
	return entitylist.Query{
		Page:  1,
		Limit: w.fetchLimit,
	}
}

// Assignment сессия назначения вакансии, создается при первом обращении
func (w *Workspace) Assignment(jobID string) *assignment.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()
	sess, ok := w.assignments[jobID]
	if !ok {
		sess = assignment.NewSession(w.Client, w.Tracker, w.Notify, w.fetchLimit)
		w.assignments[jobID] = sess
	}
	return sess
}

func (w *Workspace) FindAssignment(jobID string) (*assignment.Session, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()
	sess, ok := w.assignments[jobID]
	return sess, ok
}

func (w *Workspace) CloseAssignment(jobID string) {
	w.mu.Lock()
	sess, ok := w.assignments[jobID]
	delete(w.assignments, jobID)
	w.mu.Unlock()
	if ok {
		sess.Close()
	}
}

func (w *Workspace) closeAll() {
	w.mu.Lock()
	sessions := w.assignments
	w.assignments = map[string]*assignment.Session{}
	w.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}
}

func (w *Workspace) Touch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

// Wait ждет подтверждения всех локальных изменений сессии
func (w *Workspace) Wait() {
	w.Tracker.Wait()
}
