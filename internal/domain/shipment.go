package domain

import "time"

// Shipment belongs to an order, uses exactly one shipping method and
// carries at most one Slot at a time.
type Shipment struct {
	ID       int64
	OrderID  int64
	MethodID int64
	Position int

	Slot *Slot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlot returns true if the shipment currently has a slot assigned.
func (s *Shipment) HasSlot() bool {
	return s.Slot != nil
}

// Order представляет активную корзину/заказ покупателя
// Shipments упорядочены по позиции и адресуются индексом извне
type Order struct {
	ID        int64
	Token     string
	Shipments []*Shipment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShipmentAt возвращает отправление по индексу или nil, если индекс вне диапазона
func (o *Order) ShipmentAt(index int) *Shipment {
	if index < 0 || index >= len(o.Shipments) {
		return nil
	}
	return o.Shipments[index]
}

// ShipmentByMethod возвращает первое отправление с указанным методом доставки
// O(число отправлений) - в корзине их единицы, линейный проход приемлем
func (o *Order) ShipmentByMethod(methodID int64) *Shipment {
	for _, shipment := range o.Shipments {
		if shipment.MethodID == methodID {
			return shipment
		}
	}
	return nil
}
