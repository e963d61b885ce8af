package recurrence

import "errors"

var (
	// ErrInvalidRule возвращается, когда правило повторения не парсится
	ErrInvalidRule = errors.New("recurrence: invalid recurrence rule")

	// ErrInvalidWindow возвращается, когда конец окна раньше его начала
	ErrInvalidWindow = errors.New("recurrence: window end is before window start")
)
