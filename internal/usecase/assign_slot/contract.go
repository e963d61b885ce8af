package assign_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// CartContext интерфейс доступа к активному заказу покупателя
type CartContext interface {
	GetActiveOrder(ctx context.Context, orderToken string) (*domain.Order, error)
}

// MethodLookup интерфейс справочника методов доставки
type MethodLookup interface {
	FindByCode(ctx context.Context, code string) (*domain.ShippingMethod, error)
}

// SlotStore интерфейс хранилища слотов
type SlotStore interface {
	FindByMethodAndTimestamp(ctx context.Context, methodID int64, timestamp time.Time) ([]*domain.Slot, error)
	Save(ctx context.Context, slot *domain.Slot) error
}

// SlotFactory фабрика пустых слотов
type SlotFactory interface {
	NewSlot() *domain.Slot
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DefaultSlotFactory фабрика слотов по умолчанию
type DefaultSlotFactory struct{}

// NewSlot возвращает пустой слот до заполнения полей
func (f *DefaultSlotFactory) NewSlot() *domain.Slot {
	return &domain.Slot{}
}
