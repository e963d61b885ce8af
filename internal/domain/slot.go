package domain

import "time"

// Slot represents one customer's booking of a single schedule occurrence.
// Duration and delay values are snapshotted from the method configuration
// at assignment time, so later configuration edits never change an
// existing booking.
type Slot struct {
	ID         int64
	ShipmentID *int64 // NULL = orphaned slot, must not count toward occupancy
	MethodID   int64

	Timestamp time.Time // occurrence start, always stored in UTC

	DurationMinutes         int
	PickupDelayMinutes      int
	PreparationDelayMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasShipment returns true if the slot is bound to a live shipment.
func (s *Slot) HasShipment() bool {
	return s.ShipmentID != nil
}

// TimestampKey returns the slot's occurrence instant as a comparable key.
// Slots are grouped and compared by formatted instant, never by record
// identity: two records at the same instant occupy the same occurrence.
func (s *Slot) TimestampKey() string {
	return InstantKey(s.Timestamp)
}

// BelongsToShipment returns true if the slot is bound to the given shipment.
func (s *Slot) BelongsToShipment(shipmentID int64) bool {
	return s.ShipmentID != nil && *s.ShipmentID == shipmentID
}
