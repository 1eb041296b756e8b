package mailer

import "errors"

var (
	// ErrUnknownTemplate возвращается, если шаблон с таким именем не зарегистрирован
	ErrUnknownTemplate = errors.New("mailer: unknown template")

	// ErrRender возвращается при ошибке рендеринга шаблона
	ErrRender = errors.New("mailer: failed to render template")

	// ErrInvalidRecipient возвращается, если адрес получателя пустой или некорректный
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")

	// ErrDelivery возвращается при ошибке доставки письма
	ErrDelivery = errors.New("mailer: delivery failed")

	// ErrConfig возвращается при некорректной конфигурации SMTP
	ErrConfig = errors.New("mailer: invalid configuration")
)
