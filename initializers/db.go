package initializers

import (
	log "github.com/sirupsen/logrus"
	"vms-console/config"
	"vms-console/db"
	apiauditstore "vms-console/lib/api-audit-store"
)

// AuditStore nil, если БД отключена
var AuditStore apiauditstore.Provider

func InitDBConnection() {
	if !*config.Conf.Database.Enabled {
		log.Info("БД отключена, аудит запросов к сервису вакансий не ведется")
		return
	}
	err := db.Connect(db.ConnectParams{
		Host:      config.Conf.Database.Host,
		Port:      config.Conf.Database.Port,
		Database:  config.Conf.Database.Name,
		User:      config.Conf.Database.User,
		Password:  config.Conf.Database.Password,
		DebugMode: *config.Conf.Database.DebugMode,
		Migrate:   *config.Conf.Database.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}
	AuditStore = apiauditstore.NewInstance(db.DB)
}
