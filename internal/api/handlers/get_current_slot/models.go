package get_current_slot

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/service/slots/models"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID                      int64  `json:"id"`
	ShipmentID              *int64 `json:"shipmentId,omitempty"`
	MethodID                int64  `json:"methodId"`
	Timestamp               string `json:"timestamp"` // RFC3339, UTC
	DurationMinutes         int    `json:"durationMinutes"`
	PickupDelayMinutes      int    `json:"pickupDelayMinutes"`
	PreparationDelayMinutes int    `json:"preparationDelayMinutes"`
	CreatedAt               string `json:"createdAt"`
	UpdatedAt               string `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:                      resp.ID,
		ShipmentID:              resp.ShipmentID,
		MethodID:                resp.MethodID,
		Timestamp:               resp.Timestamp.Format(time.RFC3339),
		DurationMinutes:         resp.DurationMinutes,
		PickupDelayMinutes:      resp.PickupDelayMinutes,
		PreparationDelayMinutes: resp.PreparationDelayMinutes,
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               resp.UpdatedAt.Format(time.RFC3339),
	}
}
