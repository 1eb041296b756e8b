package sequence

import "errors"

// ErrNextValue возвращается, если не удалось получить следующее значение последовательности
var ErrNextValue = errors.New("sequence.repository: failed to get next value")
