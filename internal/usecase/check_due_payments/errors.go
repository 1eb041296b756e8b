package check_due_payments

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("check_due_payments: internal error")
