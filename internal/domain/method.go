package domain

import "time"

// ShippingMethod represents a shipping method a shipment can use.
// SlotConfig is optional: a method without one supports no slot
// scheduling and all slot operations degrade to empty results.
type ShippingMethod struct {
	ID   int64
	Code string
	Name string

	SlotConfig *ShippingSlotConfig

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlotConfig returns true if slot scheduling is configured for the method.
func (m *ShippingMethod) HasSlotConfig() bool {
	return m.SlotConfig != nil
}
