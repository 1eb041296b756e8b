// Package scheduler запускает периодические задачи по cron-расписанию.
// Каждый прогон берет распределенную блокировку, поэтому при нескольких репликах
// задача выполняется только на одной из них.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ReceptionService/internal/infra/cache"
)

// Scheduler планировщик периодических задач
type Scheduler struct {
	cron    *cron.Cron
	locker  Locker
	lockTTL time.Duration
	logger  Logger

	mu   sync.RWMutex
	jobs map[string]Job
}

// New создает планировщик; расписания интерпретируются в location
func New(locker Locker, lockTTL time.Duration, location *time.Location, logger Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		locker:  locker,
		lockTTL: lockTTL,
		logger:  logger,
		jobs:    make(map[string]Job),
	}
}

// Register добавляет задачу name с расписанием spec (5 полей cron)
// Пустой spec регистрирует задачу только для ручного запуска
func (s *Scheduler) Register(name, spec string, job Job) error {
	s.mu.Lock()
	s.jobs[name] = job
	s.mu.Unlock()

	if spec == "" {
		s.logger.Info("Scheduler: job %s registered for manual runs only", name)
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.runScheduled(name) }); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSpec, name, spec, err)
	}

	s.logger.Info("Scheduler: job %s scheduled at %q", name, spec)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущих задач или отмены ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run выполняет зарегистрированную задачу name под блокировкой
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.RunExclusive(ctx, name, job)
}

// RunExclusive выполняет fn под блокировкой name
// Если блокировку держит другой процесс, возвращает ErrAlreadyRunning
func (s *Scheduler) RunExclusive(ctx context.Context, name string, fn Job) error {
	lock, err := s.locker.Acquire(ctx, name, s.lockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return ErrAlreadyRunning
		}
		return fmt.Errorf("scheduler: acquire lock %s: %w", name, err)
	}
	defer func() {
		// Освобождаем блокировку даже при отмененном контексте запроса
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil {
			s.logger.Warn("Scheduler: release lock %s: %v", name, err)
		}
	}()

	start := time.Now()
	if err := fn(ctx); err != nil {
		return err
	}
	s.logger.Info("Scheduler: job %s finished in %s", name, time.Since(start))
	return nil
}

func (s *Scheduler) runScheduled(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()

	err := s.Run(ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRunning):
		s.logger.Info("Scheduler: job %s skipped, running elsewhere", name)
	default:
		s.logger.Error("Scheduler: job %s failed: %v", name, err)
	}
}

// cronLogger адаптирует Logger к интерфейсу cron.Logger
type cronLogger struct {
	logger Logger
}

// Info отбрасывается, как в cron.PrintfLogger: cron пишет его на каждом тике
func (l cronLogger) Info(string, ...interface{}) {}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
