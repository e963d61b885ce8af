package build_calendar

import "errors"

var (
	// ErrMethodNotFound возвращается, когда метод доставки не найден по коду
	ErrMethodNotFound = errors.New("build_calendar: shipping method not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("build_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_calendar: internal error")
)
