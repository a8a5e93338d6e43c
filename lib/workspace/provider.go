package workspace

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"vms-console/lib/metrics"
	"vms-console/lib/utils/optimistic"
	"vms-console/lib/vmsclient"
	wsmodels "vms-console/models/ws"
)

type Provider interface {
	// Get рабочее пространство сессии, создается при первом обращении
	Get(sess vmsclient.SessionContext) *Workspace
	Find(sessionID string) (*Workspace, bool)
	Drop(sessionID string)
	// SweepIdle удаляет пространства без обращений дольше idle
	SweepIdle(now time.Time, idle time.Duration) []string
	Len() int
	WaitAll()
}

var Instance Provider

type Options struct {
	FetchLimit     int
	ConfirmTimeout time.Duration
	Rollback       bool
	NewClient      func(sess vmsclient.SessionContext) vmsclient.Provider
	Notifier       func(sessionID string) wsmodels.Notify
}

func NewProvider(options Options) Provider {
	if options.NewClient == nil {
		options.NewClient = vmsclient.New
	}
	if options.FetchLimit <= 0 {
		options.FetchLimit = 1000
	}
	return &impl{
		options:    options,
		workspaces: map[string]*Workspace{},
	}
}

type impl struct {
	mu         sync.Mutex
	options    Options
	workspaces map[string]*Workspace
}

func (i *impl) Get(sess vmsclient.SessionContext) *Workspace {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := sess.SessionID()
	if w, ok := i.workspaces[id]; ok {
		w.Touch()
		return w
	}
	notify := wsmodels.NopNotify
	if i.options.Notifier != nil {
		notify = i.options.Notifier(id)
	}
	w := newWorkspace(
		id,
		i.options.NewClient(sess),
		optimistic.NewTracker(i.options.ConfirmTimeout, i.options.Rollback),
		notify,
		i.options.FetchLimit,
	)
	i.workspaces[id] = w
	metrics.SetActiveWorkspaces(len(i.workspaces))
	log.WithField("session_id", id).Debug("создано рабочее пространство сессии")
	return w
}

func (i *impl) Find(sessionID string) (*Workspace, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	w, ok := i.workspaces[sessionID]
	return w, ok
}

func (i *impl) Drop(sessionID string) {
	i.mu.Lock()
	w, ok := i.workspaces[sessionID]
	delete(i.workspaces, sessionID)
	metrics.SetActiveWorkspaces(len(i.workspaces))
	i.mu.Unlock()
	if ok {
		w.closeAll()
	}
}

func (i *impl) SweepIdle(now time.Time, idle time.Duration) []string {
	i.mu.Lock()
	dropped := []*Workspace{}
	ids := []string{}
	for id, w := range i.workspaces {
		if now.Sub(w.idleSince()) > idle {
			delete(i.workspaces, id)
			dropped = append(dropped, w)
			ids = append(ids, id)
		}
	}
	metrics.SetActiveWorkspaces(len(i.workspaces))
	i.mu.Unlock()
	for _, w := range dropped {
		w.closeAll()
	}
	return ids
}

func (i *impl) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.workspaces)
}

func (i *impl) WaitAll() {
	i.mu.Lock()
	list := make([]*Workspace, 0, len(i.workspaces))
	for _, w := range i.workspaces {
		list = append(list, w)
	}
	i.mu.Unlock()
	for _, w := range list {
		w.Wait()
	}
}
