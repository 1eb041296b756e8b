package scheduler

import "errors"

var (
	// ErrUnknownJob возвращается для незарегистрированной задачи
	ErrUnknownJob = errors.New("scheduler: unknown job")

	// ErrAlreadyRunning возвращается, когда задачу уже выполняет другая реплика
	ErrAlreadyRunning = errors.New("scheduler: job is already running")

	// ErrInvalidSpec возвращается при некорректном cron-выражении
	ErrInvalidSpec = errors.New("scheduler: invalid cron spec")
)
