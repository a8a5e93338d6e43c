package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "vms-console/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.ApiAudit{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApiAudit")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
