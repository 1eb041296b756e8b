package invitations

import "errors"

var (
	// ErrInvitationNotFound возвращается, когда приглашение не найдено
	ErrInvitationNotFound = errors.New("invitations: invitation not found")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав на приглашение
	ErrAccessDenied = errors.New("invitations: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invitations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("invitations: internal error")
)
