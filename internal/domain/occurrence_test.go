package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstantKey_TimeZoneIndependent(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)

	utc := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	msk := time.Date(2026, 1, 10, 13, 0, 0, 0, moscow)

	assert.Equal(t, InstantKey(utc), InstantKey(msk))
	assert.True(t, SameInstant(utc, msk))
	assert.False(t, SameInstant(utc, utc.Add(time.Second)))
}

func TestOrder_ShipmentAt(t *testing.T) {
	order := &Order{Shipments: []*Shipment{
		{ID: 1, Position: 0},
		{ID: 2, Position: 1},
	}}

	assert.Equal(t, int64(1), order.ShipmentAt(0).ID)
	assert.Equal(t, int64(2), order.ShipmentAt(1).ID)
	assert.Nil(t, order.ShipmentAt(2))
	assert.Nil(t, order.ShipmentAt(-1))
}

func TestSlot_BelongsToShipment(t *testing.T) {
	shipmentID := int64(100)
	slot := &Slot{ID: 1, ShipmentID: &shipmentID}
	orphan := &Slot{ID: 2}

	assert.True(t, slot.BelongsToShipment(100))
	assert.False(t, slot.BelongsToShipment(101))
	assert.False(t, orphan.BelongsToShipment(100))
	assert.False(t, orphan.HasShipment())
}
