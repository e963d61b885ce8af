package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	// FindByMethodFromDate возвращает слоты метода с timestamp >= fromDate
	// (или все слоты метода, если fromDate не указан)
	FindByMethodFromDate(ctx context.Context, methodID int64, fromDate *time.Time) ([]*domain.Slot, error)

	// FindByMethodAndTimestamp возвращает слоты метода на конкретный момент времени
	FindByMethodAndTimestamp(ctx context.Context, methodID int64, timestamp time.Time) ([]*domain.Slot, error)
}

// MethodStore интерфейс справочника методов доставки
type MethodStore interface {
	FindByCode(ctx context.Context, code string) (*domain.ShippingMethod, error)
	GetByID(ctx context.Context, id int64) (*domain.ShippingMethod, error)
}

// CartContext интерфейс доступа к активному заказу покупателя
type CartContext interface {
	GetActiveOrder(ctx context.Context, orderToken string) (*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
