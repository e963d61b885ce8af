package models

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SlotResponse модель слота для отдачи наружу
type SlotResponse struct {
	ID                      int64
	ShipmentID              *int64
	MethodID                int64
	Timestamp               time.Time
	DurationMinutes         int
	PickupDelayMinutes      int
	PreparationDelayMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// FromDomainSlot конвертирует доменный слот в модель ответа
func FromDomainSlot(slot *domain.Slot) *SlotResponse {
	if slot == nil {
		return nil
	}
	return &SlotResponse{
		ID:                      slot.ID,
		ShipmentID:              slot.ShipmentID,
		MethodID:                slot.MethodID,
		Timestamp:               slot.Timestamp.UTC(),
		DurationMinutes:         slot.DurationMinutes,
		PickupDelayMinutes:      slot.PickupDelayMinutes,
		PreparationDelayMinutes: slot.PreparationDelayMinutes,
		CreatedAt:               slot.CreatedAt,
		UpdatedAt:               slot.UpdatedAt,
	}
}
