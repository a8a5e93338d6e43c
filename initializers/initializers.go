package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"vms-console/config"
	"vms-console/fiberlog"
	authhandler "vms-console/lib/auth"
	exporthandler "vms-console/lib/export"
	xlsexport "vms-console/lib/export/xls"
	"vms-console/lib/janitor"
	jobhandler "vms-console/lib/job"
	passwordreset "vms-console/lib/password-reset"
	profilehandler "vms-console/lib/profile"
	"vms-console/lib/session"
	initchecker "vms-console/lib/utils/init-checker"
	vendorhandler "vms-console/lib/vendor"
	"vms-console/lib/vmsclient"
	"vms-console/lib/workspace"
	connectionhub "vms-console/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSessionStore(ctx)
	connectionhub.Init()
	vmsclient.Configure(vmsclient.Options{
		Host:       config.Conf.VMS.Host,
		Timeout:    time.Duration(config.Conf.VMS.RequestTimeoutSec) * time.Second,
		AuditStore: AuditStore,
	})
	workspace.Instance = workspace.NewProvider(workspace.Options{
		FetchLimit:     config.Conf.VMS.ListFetchLimit,
		ConfirmTimeout: time.Duration(config.Conf.VMS.RequestTimeoutSec) * time.Second,
		Rollback:       *config.Conf.VMS.RollbackOnFailure,
		NewClient:      vmsclient.New,
		Notifier:       connectionhub.Instance.Notifier,
	})
	authhandler.NewHandler(authhandler.Options{
		Store:      session.Instance,
		Workspaces: workspace.Instance,
		Hub:        connectionhub.Instance,
		NewClient:  vmsclient.New,
		Secret:     config.Conf.Auth.JWTSecret,
		TTL:        time.Duration(config.Conf.Auth.JWTExpireInSec) * time.Second,
	})
	passwordreset.NewHandler(passwordreset.Options{
		NewClient:    vmsclient.New,
		CountdownSec: config.Conf.PasswordReset.OtpCountdownSec,
		Notifier:     connectionhub.Instance.Notifier,
	})
	jobhandler.NewHandler(config.Conf.UI.JobsPerPage)
	vendorhandler.NewHandler(config.Conf.UI.VendorsPerPage)
	profilehandler.NewHandler()
	xlsexport.NewHandler()
	// после обработчиков вакансий и вендоров
	exporthandler.NewHandler()
	err := initchecker.Check(
		initchecker.Dep("session store", session.Instance),
		initchecker.Dep("connection hub", connectionhub.Instance),
		initchecker.Dep("workspace provider", workspace.Instance),
		initchecker.Dep("auth handler", authhandler.Instance),
		initchecker.Dep("password reset handler", passwordreset.Instance),
		initchecker.Dep("job handler", jobhandler.Instance),
		initchecker.Dep("vendor handler", vendorhandler.Instance),
		initchecker.Dep("profile handler", profilehandler.Instance),
		initchecker.Dep("export handler", exporthandler.Instance),
	)
	if err != nil {
		panic(err.Error())
	}
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Очистка истекших сессий, простаивающих пространств и брошенных сбросов пароля
	err := janitor.StartWorker(ctx, janitor.Options{
		Spec:           config.Conf.Janitor.Spec,
		Sessions:       session.Instance,
		Workspaces:     workspace.Instance,
		Hub:            connectionhub.Instance,
		Resets:         passwordreset.Instance,
		Audit:          AuditStore,
		WorkspaceIdle:  time.Duration(config.Conf.Session.WorkspaceIdleMin) * time.Minute,
		FlowTTL:        time.Duration(config.Conf.PasswordReset.FlowTTLMin) * time.Minute,
		AuditRetention: time.Duration(config.Conf.Janitor.AuditRetentionDays) * 24 * time.Hour,
	})
	if err != nil {
		log.WithError(err).Error("ошибка запуска задачи очистки")
	}
}
