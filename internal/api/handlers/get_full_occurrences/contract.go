package get_full_occurrences

import (
	"context"
	"time"
)

type CapacityService interface {
	FindFullOccurrencesByCode(ctx context.Context, orderToken string, methodCode string, fromDate *time.Time) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
