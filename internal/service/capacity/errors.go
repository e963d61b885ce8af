package capacity

import "errors"

var (
	// ErrMethodNotFound возвращается, когда метод доставки не найден
	ErrMethodNotFound = errors.New("capacity: shipping method not found")

	// ErrShipmentNotFound возвращается при некорректном индексе отправления
	ErrShipmentNotFound = errors.New("capacity: shipment not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
