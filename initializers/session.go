package initializers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"vms-console/config"
	"vms-console/lib/session"
)

var redisClient *redis.Client

func InitSessionStore(ctx context.Context) {
	if config.Conf.Session.Store != "redis" {
		session.Instance = session.NewMemoryStore()
		log.Info("сессии хранятся в памяти")
		return
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	rdb, err := session.NewRedisClient(connectCtx, config.Conf.Session.RedisURL)
	if err != nil {
		panic(err.Error())
	}
	redisClient = rdb
	session.Instance = session.NewRedisStore(rdb)
	log.Info("сессии хранятся в redis")
}

func CloseSessionStore() {
	if redisClient == nil {
		return
	}
	if err := redisClient.Close(); err != nil {
		log.WithError(err).Error("ошибка закрытия соединения с redis")
	}
}
