package assign_slot

import (
	"time"

	assignSlot "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/assign_slot"
)

// AssignSlotRequest HTTP request model
type AssignSlotRequest struct {
	StartTime string `json:"startTime"` // RFC3339, любая зона
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID                      int64  `json:"id"`
	ShipmentID              int64  `json:"shipmentId"`
	MethodID                int64  `json:"methodId"`
	Timestamp               string `json:"timestamp"` // RFC3339, UTC
	DurationMinutes         int    `json:"durationMinutes"`
	PickupDelayMinutes      int    `json:"pickupDelayMinutes"`
	PreparationDelayMinutes int    `json:"preparationDelayMinutes"`
	CreatedAt               string `json:"createdAt"`
	UpdatedAt               string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignSlotRequest) ToUseCaseRequest(orderToken, methodCode string, shipmentIndex int) (*assignSlot.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &assignSlot.Request{
		OrderToken:    orderToken,
		MethodCode:    methodCode,
		ShipmentIndex: shipmentIndex,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:                      resp.ID,
		ShipmentID:              resp.ShipmentID,
		MethodID:                resp.MethodID,
		Timestamp:               resp.Timestamp.UTC().Format(time.RFC3339),
		DurationMinutes:         resp.DurationMinutes,
		PickupDelayMinutes:      resp.PickupDelayMinutes,
		PreparationDelayMinutes: resp.PreparationDelayMinutes,
		CreatedAt:               resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               resp.UpdatedAt.Format(time.RFC3339),
	}
}
