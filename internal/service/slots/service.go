package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/slots/models"
)

// Service сервис для работы с назначенными слотами отправлений
type Service struct {
	cartContext CartContext
	methodStore MethodStore
	slotStore   SlotStore
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(cartContext CartContext, methodStore MethodStore, slotStore SlotStore, logger Logger) *Service {
	return &Service{
		cartContext: cartContext,
		methodStore: methodStore,
		slotStore:   slotStore,
		logger:      logger,
	}
}

// Reset снимает назначение слота с отправления
// Отправление без слота - no-op, а не ошибка: операция идемпотентна
func (s *Service) Reset(ctx context.Context, orderToken string, shipmentIndex int) error {
	s.logger.Info("Reset: shipment index=%d", shipmentIndex)

	shipment, err := s.resolveShipment(ctx, orderToken, shipmentIndex)
	if err != nil {
		return err
	}

	if !shipment.HasSlot() {
		s.logger.Info("Reset: shipment id=%d has no slot, nothing to do", shipment.ID)
		return nil
	}

	if err := s.slotStore.Delete(ctx, shipment.Slot.ID); err != nil {
		// Параллельный reset уже удалил запись - идемпотентный исход
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Info("Reset: slot id=%d already deleted", shipment.Slot.ID)
			return nil
		}
		s.logger.Error("Reset: failed to delete slot id=%d: %v", shipment.Slot.ID, err)
		return fmt.Errorf("%w: Reset - delete slot: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: deleted slot id=%d for shipment id=%d", shipment.Slot.ID, shipment.ID)
	return nil
}

// FindByMethod возвращает слот отправления активного заказа с указанным
// методом доставки или nil, если такого отправления или слота нет
func (s *Service) FindByMethod(ctx context.Context, orderToken string, method *domain.ShippingMethod) (*domain.Slot, error) {
	order, err := s.cartContext.GetActiveOrder(ctx, orderToken)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: FindByMethod - cart context: %v", ErrInternal, err)
	}

	shipment := order.ShipmentByMethod(method.ID)
	if shipment == nil {
		return nil, nil
	}
	return shipment.Slot, nil
}

// GetCurrentSlotByCode возвращает текущий слот покупателя для метода
// по его коду, или nil, если слот не назначен
func (s *Service) GetCurrentSlotByCode(ctx context.Context, orderToken string, methodCode string) (*models.SlotResponse, error) {
	method, err := s.methodStore.FindByCode(ctx, methodCode)
	if err != nil {
		if errors.Is(err, methodRepo.ErrMethodNotFound) {
			s.logger.Warn("GetCurrentSlotByCode: method code=%s not found", methodCode)
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("%w: GetCurrentSlotByCode - method store: %v", ErrInternal, err)
	}

	slot, err := s.FindByMethod(ctx, orderToken, method)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSlot(slot), nil
}

func (s *Service) resolveShipment(ctx context.Context, orderToken string, shipmentIndex int) (*domain.Shipment, error) {
	order, err := s.cartContext.GetActiveOrder(ctx, orderToken)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, fmt.Errorf("%w: resolve shipment - cart context: %v", ErrInternal, err)
	}

	shipment := order.ShipmentAt(shipmentIndex)
	if shipment == nil {
		s.logger.Warn("resolveShipment: index=%d out of range for order=%d", shipmentIndex, order.ID)
		return nil, ErrShipmentNotFound
	}
	return shipment, nil
}
