package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vms-console:session:"

// NewRedisClient создает клиента и проверяет соединение
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка разбора адреса redis")
	}
	rdb := redis.NewClient(opts)
	if err = rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis недоступен")
	}
	return rdb, nil
}

// NewRedisStore сессии живут в redis с TTL до ExpiresAt
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{
		rdb: rdb,
	}
}

type redisStore struct {
	rdb *redis.Client
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("пустая сессия")
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("сессия уже истекла")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации сессии")
	}
	return r.rdb.Set(ctx, keyPrefix+s.ID, data, ttl).Err()
}

func (r *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения сессии")
	}
	rec := Session{}
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "ошибка десериализации сессии")
	}
	if rec.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, keyPrefix+id).Err()
}

// Sweep redis удаляет ключи сам по TTL
func (r *redisStore) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	return nil, nil
}
