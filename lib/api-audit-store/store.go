package apiauditstore

import (
	"time"

	"gorm.io/gorm"
	dbmodels "vms-console/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApiAudit) (id string, err error)
	ListBySession(sessionID string, limit int) ([]dbmodels.ApiAudit, error)
	DeleteOlderThan(before time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApiAudit) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListBySession(sessionID string, limit int) ([]dbmodels.ApiAudit, error) {
	list := []dbmodels.ApiAudit{}
	err := i.db.
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteOlderThan(before time.Time) (int64, error) {
	tx := i.db.
		Where("created_at < ?", before).
		Delete(&dbmodels.ApiAudit{})
	return tx.RowsAffected, tx.Error
}
