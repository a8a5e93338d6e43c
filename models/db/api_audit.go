package dbmodels

import (
	"github.com/pkg/errors"
)

// ApiAudit неуспешный вызов удаленного сервиса вакансий
type ApiAudit struct {
	BaseModel
	SessionID string `gorm:"type:varchar(36);index"`
	Operation string `gorm:"type:varchar(64);index"`
	Method    string `gorm:"type:varchar(8)"`
	Uri       string
	Request   string
	Response  string
	Status    int
	Error     string
}

func (r ApiAudit) Validate() error {
	if r.Uri == "" {
		return errors.New("не указан адрес запроса")
	}
	if r.Method == "" {
		return errors.New("не указан метод запроса")
	}
	return nil
}
