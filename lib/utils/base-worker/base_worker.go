package baseworker

import (
	"context"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName string
	spec       string
}

func NewInstance(workerName, spec string) *BaseImpl {
	return &BaseImpl{
		WorkerName: workerName,
		spec:       spec,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Start запускает задачу по расписанию до завершения ctx. Пересекающиеся запуски пропускаются
func (i BaseImpl) Start(ctx context.Context, jobFunc func(ctx context.Context)) error {
	logger := cron.PrintfLogger(i.GetLogger())
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(logger)))
	_, err := c.AddFunc(i.spec, func() {
		i.RunOnce(ctx, jobFunc)
	})
	if err != nil {
		return errors.Wrapf(err, "некорректное расписание %v", i.spec)
	}
	c.Start()
	i.GetLogger().WithField("spec", i.spec).Info("Задача запланирована")
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		i.GetLogger().Info("Задача остановлена")
	}()
	return nil
}

// RunOnce один запуск задачи с перехватом паники
func (i BaseImpl) RunOnce(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	if ctx.Err() != nil {
		return
	}
	logger := i.GetLogger()
	logger.Debug("Задача запущена")
	jobFunc(ctx)
	logger.Debug("Задача выполнена")
}
