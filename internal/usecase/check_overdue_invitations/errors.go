package check_overdue_invitations

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("check_overdue_invitations: internal error")
