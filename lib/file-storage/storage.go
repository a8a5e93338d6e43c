package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// UploadExport сохраняет выгрузку и возвращает временную ссылку на скачивание
	UploadExport(ctx context.Context, sessionID, fileName, contentType string, data []byte) (link string, err error)
}

// Instance nil, если хранилище не настроено. Тогда выгрузки отдаются напрямую
var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
	linkExpire time.Duration
}

func NewInstance(s3client *minio.Client, bucketName string, linkExpire time.Duration) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
		linkExpire: linkExpire,
	}
}

func (i impl) UploadExport(ctx context.Context, sessionID, fileName, contentType string, data []byte) (string, error) {
	objectName := i.objectName(sessionID, fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки выгрузки в S3")
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	link, err := i.s3client.PresignedGetObject(ctx, i.bucketName, objectName, i.linkExpire, params)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения ссылки на выгрузку")
	}
	log.
		WithField("session_id", sessionID).
		WithField("object", objectName).
		Debug("выгрузка сохранена в S3")
	return link.String(), nil
}

func (i impl) objectName(sessionID, fileName string) string {
	return fmt.Sprintf("exports/%s/%d-%s", sessionID, time.Now().UnixNano(), fileName)
}
