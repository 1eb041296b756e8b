package invitation_workflow

import "errors"

var (
	// ErrInvitationNotFound возвращается, когда приглашение не найдено
	ErrInvitationNotFound = errors.New("invitation_workflow: invitation not found")

	// ErrRenterRequired возвращается, когда для сотрудника не найден арендатор
	ErrRenterRequired = errors.New("invitation_workflow: officer is not responsible for any renter")

	// ErrRenterNotFound возвращается, когда указанный арендатор не найден
	ErrRenterNotFound = errors.New("invitation_workflow: renter not found")

	// ErrInvalidEmail возвращается при некорректном email гостя
	ErrInvalidEmail = errors.New("invitation_workflow: invalid guest email")

	// ErrNotInFuture возвращается, когда дата запланированного приглашения не в будущем
	ErrNotInFuture = errors.New("invitation_workflow: invitation date and time must be in the future")

	// ErrInvalidTransition возвращается при недопустимой смене состояния
	ErrInvalidTransition = errors.New("invitation_workflow: invalid state transition")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав
	ErrAccessDenied = errors.New("invitation_workflow: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invitation_workflow: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("invitation_workflow: internal error")
)
