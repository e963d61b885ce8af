package domain

import "time"

// ShippingSlotConfig represents the slot schedule attached to a shipping
// method. A method without a config supports no slot scheduling at all.
// Owned by configuration tooling; the scheduling core only reads it.
type ShippingSlotConfig struct {
	ID       int64
	MethodID int64

	DurationMinutes         int
	PickupDelayMinutes      int
	PreparationDelayMinutes int

	// AvailableSpots is the maximum number of concurrent bookings
	// per occurrence timestamp.
	AvailableSpots int

	// RRule is an RFC 5545 recurrence rule (e.g. "FREQ=WEEKLY;BYDAY=TU,FR").
	// An empty rule means a single occurrence at DTStart.
	RRule   string
	DTStart time.Time
	DTEnd   *time.Time // NULL = recurrence has no intrinsic end

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRecurrenceEnd returns true if the recurrence has a configured end date.
func (c *ShippingSlotConfig) HasRecurrenceEnd() bool {
	return c.DTEnd != nil
}

// SlotDuration returns the occurrence duration.
func (c *ShippingSlotConfig) SlotDuration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}
