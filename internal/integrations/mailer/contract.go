package mailer

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder счетчик отправленных уведомлений
type MetricsRecorder interface {
	NotificationSent(template string, err error)
}

// Transport доставляет готовое письмо получателю
type Transport interface {
	Deliver(ctx context.Context, msg *Message) error
}
