package entitylist

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound сущности нет в кэше списка
var ErrNotFound = errors.New("entity not found")

type Entity interface {
	GetID() string
}

type Query struct {
	Page       int
	Limit      int
	SearchTerm string
}

type Fetcher[T Entity] func(ctx context.Context, query Query) ([]T, error)

// List кэш сущностей сессии. Обновляется только целиком
type List[T Entity] struct {
	mu          sync.RWMutex
	fetch       Fetcher[T]
	items       []T
	loaded      bool
	refreshedAt time.Time
}

func New[T Entity](fetch Fetcher[T]) *List[T] {
	return &List[T]{
		fetch: fetch,
	}
}

// Refresh заменяет кэш при успехе. При ошибке кэш не меняется
func (l *List[T]) Refresh(ctx context.Context, query Query) ([]T, error) {
	items, err := l.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	l.Replace(items)
	return l.Items(), nil
}

// EnsureLoaded загружает список, если он еще не загружался
func (l *List[T]) EnsureLoaded(ctx context.Context, query Query) ([]T, error) {
	if l.Loaded() {
		return l.Items(), nil
	}
	return l.Refresh(ctx, query)
}

func (l *List[T]) Replace(items []T) {
	copied := make([]T, len(items))
	copy(copied, items)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = copied
	l.loaded = true
	l.refreshedAt = time.Now()
}

func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]T, len(l.items))
	copy(result, l.items)
	return result
}

func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var empty T
	return empty, false
}

// Update применяет fn к элементу кэша под блокировкой и возвращает результат
func (l *List[T]) Update(id string, fn func(item *T)) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for idx := range l.items {
		if l.items[idx].GetID() == id {
			fn(&l.items[idx])
			return l.items[idx], true
		}
	}
	var empty T
	return empty, false
}

func (l *List[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *List[T]) RefreshedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.refreshedAt
}
