package get_calendar

import (
	"context"

	buildCalendar "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/build_calendar"
)

type BuildCalendarUseCase interface {
	Execute(ctx context.Context, req *buildCalendar.Request) (*buildCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
