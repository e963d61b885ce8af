package build_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// RecurrenceEngine интерфейс движка повторений
type RecurrenceEngine interface {
	Expand(cfg *domain.ShippingSlotConfig, windowStart, windowEnd time.Time) ([]domain.Occurrence, error)
}

// CapacityTracker интерфейс учета заполненности вхождений
type CapacityTracker interface {
	FindFullOccurrences(ctx context.Context, method *domain.ShippingMethod, fromDate *time.Time, viewerSlot *domain.Slot) (map[string]struct{}, error)
}

// SlotFinder интерфейс поиска текущего слота покупателя
type SlotFinder interface {
	FindByMethod(ctx context.Context, orderToken string, method *domain.ShippingMethod) (*domain.Slot, error)
}

// MethodLookup интерфейс справочника методов доставки
type MethodLookup interface {
	FindByCode(ctx context.Context, code string) (*domain.ShippingMethod, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
