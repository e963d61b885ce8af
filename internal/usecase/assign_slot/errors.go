package assign_slot

import "errors"

var (
	// ErrShipmentNotFound возвращается при некорректном индексе отправления
	// в активном заказе
	ErrShipmentNotFound = errors.New("assign_slot: shipment not found")

	// ErrMethodNotFound возвращается, когда метод доставки не найден по коду
	ErrMethodNotFound = errors.New("assign_slot: shipping method not found")

	// ErrConfigMissing возвращается, когда у метода нет конфигурации слотов
	ErrConfigMissing = errors.New("assign_slot: method has no slot configuration")

	// ErrSlotFull возвращается, когда на выбранный момент не осталось мест
	ErrSlotFull = errors.New("assign_slot: occurrence is fully booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_slot: internal error")
)
