package slots

import "errors"

var (
	// ErrShipmentNotFound возвращается при некорректном индексе отправления
	ErrShipmentNotFound = errors.New("slots: shipment not found")

	// ErrMethodNotFound возвращается, когда метод доставки не найден
	ErrMethodNotFound = errors.New("slots: shipping method not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
