package janitor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	apiauditstore "vms-console/lib/api-audit-store"
	passwordreset "vms-console/lib/password-reset"
	"vms-console/lib/session"
	baseworker "vms-console/lib/utils/base-worker"
	"vms-console/lib/workspace"
	connectionhub "vms-console/lib/ws/hub/connection-hub"
	"vms-console/models"
)

type Options struct {
	Spec           string
	Sessions       session.Store
	Workspaces     workspace.Provider
	Hub            connectionhub.Provider
	Resets         passwordreset.Provider
	Audit          apiauditstore.Provider // nil, если БД отключена
	WorkspaceIdle  time.Duration
	FlowTTL        time.Duration
	AuditRetention time.Duration
}

type Worker struct {
	*baseworker.BaseImpl
	options Options
}

func New(options Options) *Worker {
	return &Worker{
		BaseImpl: baseworker.NewInstance("janitor", options.Spec),
		options:  options,
	}
}

// StartWorker чистит истекшие сессии, простаивающие пространства, брошенные
// сбросы пароля и старый аудит до завершения ctx
func StartWorker(ctx context.Context, options Options) error {
	i := New(options)
	return i.Start(ctx, func(ctx context.Context) {
		i.Sweep(ctx, time.Now())
	})
}

type Report struct {
	ExpiredSessions  []string
	IdleWorkspaces   []string
	AbandonedFlows   []string
	DeletedAuditRows int64
}

func (i *Worker) Sweep(ctx context.Context, now time.Time) Report {
	logger := i.GetLogger()
	report := Report{}
	if i.options.Sessions != nil {
		expired, err := i.options.Sessions.Sweep(ctx, now)
		if err != nil {
			logger.WithError(err).Error("ошибка очистки истекших сессий")
		}
		for _, id := range expired {
			i.expire(id)
		}
		report.ExpiredSessions = expired
	}
	if i.options.Workspaces != nil && i.options.WorkspaceIdle > 0 {
		report.IdleWorkspaces = i.options.Workspaces.SweepIdle(now, i.options.WorkspaceIdle)
	}
	if i.options.Resets != nil && i.options.FlowTTL > 0 {
		report.AbandonedFlows = i.options.Resets.SweepAbandoned(now, i.options.FlowTTL)
	}
	if i.options.Audit != nil && i.options.AuditRetention > 0 {
		deleted, err := i.options.Audit.DeleteOlderThan(now.Add(-i.options.AuditRetention))
		if err != nil {
			logger.WithError(err).Error("ошибка очистки аудита запросов")
		}
		report.DeletedAuditRows = deleted
	}
	if len(report.ExpiredSessions)+len(report.IdleWorkspaces)+len(report.AbandonedFlows) != 0 || report.DeletedAuditRows != 0 {
		logger.
			WithField("expired_sessions", len(report.ExpiredSessions)).
			WithField("idle_workspaces", len(report.IdleWorkspaces)).
			WithField("abandoned_flows", len(report.AbandonedFlows)).
			WithField("deleted_audit_rows", report.DeletedAuditRows).
			Info("очистка выполнена")
	}
	return report
}

func (i *Worker) expire(sessionID string) {
	if i.options.Workspaces != nil {
		i.options.Workspaces.Drop(sessionID)
	}
	if i.options.Hub == nil {
		return
	}
	if i.options.Hub.IsConnected(sessionID) {
		i.options.Hub.Notifier(sessionID)(models.ToastCodeSessionExpired, "Session expired, please sign in again")
		i.options.Hub.SendClose(sessionID)
	}
	i.options.Hub.Forget(sessionID)
	log.WithField("session_id", sessionID).Debug("сессия истекла")
}
