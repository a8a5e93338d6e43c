package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int64  `default:"10485760" env:"APP_BODY_LIMIT"`
	}
	// удаленный сервис вакансий и вендоров
	VMS struct {
		Host              string `default:"http://localhost:3000" env:"VMS_HOST"`
		RequestTimeoutSec int    `default:"15" env:"VMS_REQUEST_TIMEOUT_SEC"`
		ListFetchLimit    int    `default:"1000" env:"VMS_LIST_FETCH_LIMIT"`
		RollbackOnFailure *bool  `default:"true" env:"VMS_ROLLBACK_ON_FAILURE"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Session struct {
		Store            string `default:"memory" env:"SESSION_STORE"` // memory | redis
		RedisURL         string `default:"redis://127.0.0.1:6379/0" env:"SESSION_REDIS_URL"`
		WorkspaceIdleMin int    `default:"60" env:"SESSION_WORKSPACE_IDLE_MIN"`
	}
	UI struct {
		JobsPerPage    int `default:"5" env:"UI_JOBS_PER_PAGE"`
		VendorsPerPage int `default:"5" env:"UI_VENDORS_PER_PAGE"`
	}
	PasswordReset struct {
		OtpCountdownSec int `default:"600" env:"PASSWORD_RESET_OTP_COUNTDOWN_SEC"`
		FlowTTLMin      int `default:"60" env:"PASSWORD_RESET_FLOW_TTL_MIN"`
	}
	Janitor struct {
		Spec               string `default:"@every 1m" env:"JANITOR_SPEC"`
		AuditRetentionDays int    `default:"30" env:"JANITOR_AUDIT_RETENTION_DAYS"`
	}
	Database struct {
		Enabled        *bool  `default:"false" env:"DB_ENABLED"`
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"vms-console" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Enabled         *bool  `default:"false" env:"S3_ENABLED"`
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"vms-console-exports" env:"S3_BUCKET_NAME"`
		LinkExpireMin   int    `default:"30" env:"S3_LINK_EXPIRE_MIN"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(".env"); err != nil {
			log.WithError(err).Warn("не удалось загрузить .env")
		}
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
