package optimistic

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"vms-console/lib/metrics"
)

const (
	OutcomeConfirmed   = "confirmed"
	OutcomeCompensated = "compensated"
	OutcomeSuperseded  = "superseded"
	OutcomeKept        = "kept"
)

// Tracker подтверждает локальные изменения в фоне. Владелец состояния
// вызывает Begin и IsLatest под своей блокировкой, поэтому порядок блокировок
// всегда владелец -> трекер
type Tracker struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	seq      map[string]uint64
	timeout  time.Duration
	rollback bool
}

func NewTracker(timeout time.Duration, rollback bool) *Tracker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Tracker{
		seq:      map[string]uint64{},
		timeout:  timeout,
		rollback: rollback,
	}
}

// Begin регистрирует новое изменение ключа и возвращает его номер
func (t *Tracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq[key]++
	return t.seq[key]
}

// IsLatest изменение seq не перекрыто более поздним изменением того же ключа
func (t *Tracker) IsLatest(key string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq[key] == seq
}

func (t *Tracker) RollbackEnabled() bool {
	return t.rollback
}

type Mutation struct {
	Kind string
	Key  string
	// Confirm запрос подтверждения в удаленный сервис
	Confirm func(ctx context.Context) error
	// Compensate обратный переход. Возвращает false, если изменение уже перекрыто
	Compensate func(seq uint64) bool
	// Confirmed вызывается после успешного подтверждения
	Confirmed func()
	// Failed вызывается после неуспешного подтверждения
	Failed func(err error, compensated bool)
}

// Go запускает подтверждение на отвязанном контексте. Отмена запроса
// пользователя не отменяет подтверждение
func (t *Tracker) Go(seq uint64, m Mutation) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.
					WithField("kind", m.Kind).
					WithField("panic_stack", string(debug.Stack())).
					Errorf("panic: (%v)", r)
			}
		}()
		t.confirm(seq, m)
	}()
}

func (t *Tracker) confirm(seq uint64, m Mutation) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	logger := log.
		WithField("kind", m.Kind).
		WithField("key", m.Key).
		WithField("seq", seq)
	err := m.Confirm(ctx)
	if err == nil {
		metrics.ObserveOptimistic(m.Kind, OutcomeConfirmed)
		logger.Debug("изменение подтверждено")
		if m.Confirmed != nil {
			m.Confirmed()
		}
		return
	}
	compensated := false
	outcome := OutcomeKept
	if t.rollback && m.Compensate != nil {
		compensated = m.Compensate(seq)
		if compensated {
			outcome = OutcomeCompensated
		} else {
			outcome = OutcomeSuperseded
		}
	}
	metrics.ObserveOptimistic(m.Kind, outcome)
	logger.
		WithError(err).
		WithField("outcome", outcome).
		Warn("изменение не подтверждено сервисом вакансий")
	if m.Failed != nil {
		m.Failed(err, compensated)
	}
}

// Wait ждет завершения всех запущенных подтверждений
func (t *Tracker) Wait() {
	t.wg.Wait()
}
