package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("сессия не найдена или истекла")

type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Sweep удаляет истекшие сессии и возвращает их идентификаторы
	Sweep(ctx context.Context, now time.Time) ([]string, error)
}

var Instance Store

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: map[string]Session{},
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func (m *memoryStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("пустая сессия")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	rec, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Expired(time.Now()) {
		m.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := []string{}
	for id, rec := range m.sessions {
		if rec.Expired(now) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired, nil
}
