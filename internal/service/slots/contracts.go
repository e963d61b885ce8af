package slots

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// CartContext интерфейс доступа к активному заказу покупателя
type CartContext interface {
	GetActiveOrder(ctx context.Context, orderToken string) (*domain.Order, error)
}

// MethodStore интерфейс справочника методов доставки
type MethodStore interface {
	FindByCode(ctx context.Context, code string) (*domain.ShippingMethod, error)
}

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
