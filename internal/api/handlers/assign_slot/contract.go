package assign_slot

import (
	"context"

	assignSlot "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/assign_slot"
)

type AssignSlotUseCase interface {
	Execute(ctx context.Context, req *assignSlot.Request) (*assignSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
