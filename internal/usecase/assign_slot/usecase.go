package assign_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
)

// UseCase use case назначения слота доставки отправлению
type UseCase struct {
	cartContext  CartContext
	methodLookup MethodLookup
	slotStore    SlotStore
	slotFactory  SlotFactory
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartContext CartContext,
	methodLookup MethodLookup,
	slotStore SlotStore,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartContext:  cartContext,
		methodLookup: methodLookup,
		slotStore:    slotStore,
		slotFactory:  &DefaultSlotFactory{},
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case назначения слота
// Проверка вместимости и запись выполняются в одной serializable-транзакции
// с блокировкой слотов вхождения (FOR UPDATE), чтобы параллельные
// назначения на один и тот же момент не проскочили проверку одновременно
// После выполнения у отправления ровно один слот: существующий
// переиспользуется, дубликаты не создаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignSlot: method=%s, shipment=%d, start=%s",
		req.MethodCode, req.ShipmentIndex, req.StartTime.Format("2006-01-02T15:04:05Z07:00"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активный заказ и отправление по индексу
	order, err := uc.cartContext.GetActiveOrder(ctx, req.OrderToken)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("AssignSlot: active order not found for token")
			return nil, ErrShipmentNotFound
		}
		uc.logger.Error("AssignSlot: failed to get active order: %v", err)
		return nil, fmt.Errorf("%w: failed to get active order: %v", ErrInternal, err)
	}

	shipment := order.ShipmentAt(req.ShipmentIndex)
	if shipment == nil {
		uc.logger.Warn("AssignSlot: shipment index=%d out of range for order=%d", req.ShipmentIndex, order.ID)
		return nil, ErrShipmentNotFound
	}

	// 3. Получаем метод доставки по коду
	method, err := uc.methodLookup.FindByCode(ctx, req.MethodCode)
	if err != nil {
		if errors.Is(err, methodRepo.ErrMethodNotFound) {
			uc.logger.Warn("AssignSlot: method code=%s not found", req.MethodCode)
			return nil, ErrMethodNotFound
		}
		uc.logger.Error("AssignSlot: failed to get method code=%s: %v", req.MethodCode, err)
		return nil, fmt.Errorf("%w: failed to get method: %v", ErrInternal, err)
	}

	// 4. Метод без конфигурации не поддерживает планирование слотов
	if !method.HasSlotConfig() {
		uc.logger.Warn("AssignSlot: method code=%s has no slot configuration", req.MethodCode)
		return nil, ErrConfigMissing
	}
	config := method.SlotConfig

	// 5. Нормализуем запрошенное начало в UTC
	startTime := req.StartTime.UTC()

	var result *domain.Slot

	// 6. Проверка вместимости и запись - в одной serializable-транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Слоты других отправлений на этот момент (с блокировкой)
		occupants, err := uc.slotStore.FindByMethodAndTimestamp(txCtx, method.ID, startTime)
		if err != nil {
			uc.logger.Error("AssignSlot: failed to get occupants: %v", err)
			return fmt.Errorf("%w: failed to get occupants: %v", ErrInternal, err)
		}

		// Собственный слот отправления не считается против него самого:
		// перевыбор своего же вхождения всегда возможен
		occupiedByOthers := 0
		for _, occupant := range occupants {
			if !occupant.HasShipment() {
				continue
			}
			if occupant.BelongsToShipment(shipment.ID) {
				continue
			}
			occupiedByOthers++
		}

		if occupiedByOthers >= config.AvailableSpots {
			uc.logger.Warn("AssignSlot: occurrence full, %d/%d spots taken by others",
				occupiedByOthers, config.AvailableSpots)
			return ErrSlotFull
		}

		// 6.2. Переиспользуем существующий слот отправления или создаем новый
		slot := shipment.Slot
		if slot == nil {
			slot = uc.slotFactory.NewSlot()
			slot.ShipmentID = &shipment.ID
		}

		// 6.3. Заполняем момент и снимок параметров конфигурации
		// Снимок фиксируется на момент назначения: последующие правки
		// конфигурации не меняют существующие бронирования
		slot.MethodID = method.ID
		slot.Timestamp = startTime
		slot.DurationMinutes = config.DurationMinutes
		slot.PickupDelayMinutes = config.PickupDelayMinutes
		slot.PreparationDelayMinutes = config.PreparationDelayMinutes

		// 6.4. Сохраняем (insert или update)
		if err := uc.slotStore.Save(txCtx, slot); err != nil {
			uc.logger.Error("AssignSlot: failed to save slot: %v", err)
			return fmt.Errorf("%w: failed to save slot: %v", ErrInternal, err)
		}

		result = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AssignSlot: slot id=%d assigned to shipment id=%d at %s",
		result.ID, shipment.ID, result.TimestampKey())

	return &Response{
		ID:                      result.ID,
		ShipmentID:              shipment.ID,
		MethodID:                result.MethodID,
		Timestamp:               result.Timestamp,
		DurationMinutes:         result.DurationMinutes,
		PickupDelayMinutes:      result.PickupDelayMinutes,
		PreparationDelayMinutes: result.PreparationDelayMinutes,
		CreatedAt:               result.CreatedAt,
		UpdatedAt:               result.UpdatedAt,
	}, nil
}
