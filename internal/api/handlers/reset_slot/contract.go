package reset_slot

import "context"

type SlotsService interface {
	Reset(ctx context.Context, orderToken string, shipmentIndex int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
