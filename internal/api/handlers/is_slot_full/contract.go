package is_slot_full

import "context"

type CapacityService interface {
	IsShipmentSlotFull(ctx context.Context, orderToken string, shipmentIndex int) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
