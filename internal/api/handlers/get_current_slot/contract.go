package get_current_slot

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlotService/internal/service/slots/models"
)

type SlotsService interface {
	GetCurrentSlotByCode(ctx context.Context, orderToken string, methodCode string) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
