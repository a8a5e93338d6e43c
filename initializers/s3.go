package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"vms-console/config"
	filestorage "vms-console/lib/file-storage"
	s3client "vms-console/s3"
)

func InitS3() {
	if !*config.Conf.S3.Enabled {
		log.Info("S3 отключен, выгрузки отдаются напрямую")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	minioClient, err := s3client.Connect(ctx, s3client.ConnectParams{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("ошибка создания бакета выгрузок")
		return
	}
	s3client.Client = minioClient
	filestorage.NewInstance(minioClient, config.Conf.S3.BucketName, time.Duration(config.Conf.S3.LinkExpireMin)*time.Minute)
	log.Info("S3 клиент успешно инициализирован")
}
