package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"net/mail"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const subjectPrefix = "Subject:"

// Notifier рендерит шаблонные уведомления и передает их транспорту
type Notifier struct {
	templates *template.Template
	transport Transport
	domain    string
	log       Logger
	metrics   MetricsRecorder
}

// NewNotifier создает Notifier; domain используется в Message-ID
func NewNotifier(transport Transport, domain string, log Logger, metrics MetricsRecorder) (*Notifier, error) {
	tmpl, err := template.New("mail").Option("missingkey=error").ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: parse templates: %v", ErrRender, err)
	}

	if domain == "" {
		domain = "reception.local"
	}

	return &Notifier{
		templates: tmpl,
		transport: transport,
		domain:    domain,
		log:       log,
		metrics:   metrics,
	}, nil
}

// Render собирает письмо по шаблону без отправки
func (n *Notifier) Render(name string, recordID int64, to string, data interface{}) (*Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidRecipient)
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecipient, to, err)
	}

	tmpl := n.templates.Lookup(name + ".tmpl")
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}

	// Первая строка шаблона - тема письма, дальше пустая строка и тело
	head, body, _ := strings.Cut(buf.String(), "\n")
	if !strings.HasPrefix(head, subjectPrefix) {
		return nil, fmt.Errorf("%w: %s: first line must be %q", ErrRender, name, subjectPrefix)
	}

	return &Message{
		ID:       fmt.Sprintf("%s.%s.%d@%s", uuid.NewString(), name, recordID, n.domain),
		Template: name,
		RecordID: recordID,
		To:       to,
		Subject:  strings.TrimSpace(strings.TrimPrefix(head, subjectPrefix)),
		Body:     strings.TrimLeft(body, "\n"),
	}, nil
}

// Send рендерит шаблон name и доставляет письмо получателю to
// Ошибка доставки возвращается вызывающему, который откатывает свою транзакцию
func (n *Notifier) Send(ctx context.Context, name string, recordID int64, to string, data interface{}, attachments ...Attachment) error {
	msg, err := n.Render(name, recordID, to, data)
	if err != nil {
		n.log.Error("Send: render %s for record_id=%d: %v", name, recordID, err)
		n.metrics.NotificationSent(name, err)
		return err
	}
	msg.Attachments = attachments

	if err := n.transport.Deliver(ctx, msg); err != nil {
		n.log.Error("Send: deliver %s to %s for record_id=%d: %v", name, msg.To, recordID, err)
		n.metrics.NotificationSent(name, err)
		return fmt.Errorf("%w: %s: %v", ErrDelivery, name, err)
	}

	n.log.Info("Send: %s delivered to %s, record_id=%d, message_id=%s", name, msg.To, recordID, msg.ID)
	n.metrics.NotificationSent(name, nil)
	return nil
}
