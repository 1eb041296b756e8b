package mailer

import "context"

// LogTransport пишет письма в лог вместо отправки (локальный запуск)
type LogTransport struct {
	log Logger
}

// NewLogTransport создает LogTransport
func NewLogTransport(log Logger) *LogTransport {
	return &LogTransport{log: log}
}

// Deliver логирует письмо
func (t *LogTransport) Deliver(_ context.Context, msg *Message) error {
	t.log.Info("Deliver: [log transport] to=%s subject=%q template=%s attachments=%d\n%s",
		msg.To, msg.Subject, msg.Template, len(msg.Attachments), msg.Body)
	return nil
}
