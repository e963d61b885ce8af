package capacity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
)

// Service отслеживает заполненность вхождений расписания
//
// Правило одно: "занятость другими >= availableSpots => внешних мест нет",
// но оно выражено в двух системах отсчета:
//   - FindFullOccurrences смотрит со стороны наблюдателя: его собственный
//     слот исключается из пула ДО подсчета, сравнение >= spots
//   - IsFull смотрит со стороны уже существующего слота: считаются слоты
//     ДРУГИХ отправлений на тот же момент, сравнение строго > spots,
//     чтобы слот не блокировал сам себя на границе ровно-по-вместимости
//
// Асимметрия сохранена намеренно - на границе (занято ровно spots)
// агрегатный вид считает вхождение полным, а собственный слот
// покупателя полным не считается и остается доступным для перевыбора
type Service struct {
	slotStore   SlotStore
	methodStore MethodStore
	cartContext CartContext
	logger      Logger
}

// NewService создает новый сервис учета заполненности
func NewService(slotStore SlotStore, methodStore MethodStore, cartContext CartContext, logger Logger) *Service {
	return &Service{
		slotStore:   slotStore,
		methodStore: methodStore,
		cartContext: cartContext,
		logger:      logger,
	}
}

// FindOccupiedTimestamps возвращает занятость вхождений метода:
// отображение из ключа момента времени (UTC) в число бронирований
// Слоты-сироты (без отправления) и собственный слот наблюдателя
// не учитываются
func (s *Service) FindOccupiedTimestamps(
	ctx context.Context,
	method *domain.ShippingMethod,
	fromDate *time.Time,
	viewerSlot *domain.Slot,
) (map[string]int, error) {
	if !method.HasSlotConfig() {
		return map[string]int{}, nil
	}

	slots, err := s.slotStore.FindByMethodFromDate(ctx, method.ID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupiedTimestamps - slot store: %v", ErrInternal, err)
	}

	counts := make(map[string]int, len(slots))
	for _, slot := range slots {
		if !slot.HasShipment() {
			continue
		}
		if isViewerSlot(slot, viewerSlot) {
			continue
		}
		counts[slot.TimestampKey()]++
	}

	return counts, nil
}

// FindFullOccurrences возвращает множество моментов времени, на которых
// занятость (без учета собственного слота наблюдателя) достигла вместимости
func (s *Service) FindFullOccurrences(
	ctx context.Context,
	method *domain.ShippingMethod,
	fromDate *time.Time,
	viewerSlot *domain.Slot,
) (map[string]struct{}, error) {
	if !method.HasSlotConfig() {
		return map[string]struct{}{}, nil
	}

	counts, err := s.FindOccupiedTimestamps(ctx, method, fromDate, viewerSlot)
	if err != nil {
		return nil, err
	}

	spots := method.SlotConfig.AvailableSpots
	full := make(map[string]struct{})
	for key, count := range counts {
		if count >= spots {
			full[key] = struct{}{}
		}
	}

	return full, nil
}

// IsFull проверяет заполненность вхождения с точки зрения одного слота
// Считаются бронирования ДРУГИХ отправлений на момент slot.Timestamp,
// сравнение строгое (>): слот не блокирует сам себя
// Метод без конфигурации и слот без отправления полными не бывают
func (s *Service) IsFull(ctx context.Context, method *domain.ShippingMethod, slot *domain.Slot) (bool, error) {
	if !method.HasSlotConfig() {
		return false, nil
	}
	if !slot.HasShipment() {
		return false, nil
	}

	slots, err := s.slotStore.FindByMethodAndTimestamp(ctx, method.ID, slot.Timestamp)
	if err != nil {
		return false, fmt.Errorf("%w: IsFull - slot store: %v", ErrInternal, err)
	}

	count := 0
	for _, other := range slots {
		if !other.HasShipment() {
			continue
		}
		// Собственная запись слота (то же отправление) не считается
		if slot.ShipmentID != nil && other.BelongsToShipment(*slot.ShipmentID) {
			continue
		}
		count++
	}

	return count > method.SlotConfig.AvailableSpots, nil
}

// FindFullOccurrencesByCode возвращает отсортированный список полных
// моментов времени для метода по его коду
// Собственный слот покупателя (если передан orderToken) исключается
// Метод без конфигурации дает пустой результат, а не ошибку
func (s *Service) FindFullOccurrencesByCode(
	ctx context.Context,
	orderToken string,
	methodCode string,
	fromDate *time.Time,
) ([]time.Time, error) {
	method, err := s.resolveMethod(ctx, methodCode)
	if err != nil {
		return nil, err
	}

	if !method.HasSlotConfig() {
		s.logger.Info("FindFullOccurrencesByCode: method=%s has no slot config", methodCode)
		return []time.Time{}, nil
	}

	viewerSlot, err := s.viewerSlot(ctx, orderToken, method.ID)
	if err != nil {
		return nil, err
	}

	full, err := s.FindFullOccurrences(ctx, method, fromDate, viewerSlot)
	if err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, 0, len(full))
	for key := range full {
		ts, err := time.Parse(time.RFC3339, key)
		if err != nil {
			return nil, fmt.Errorf("%w: FindFullOccurrencesByCode - parse instant key %q: %v", ErrInternal, key, err)
		}
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	s.logger.Info("FindFullOccurrencesByCode: method=%s, %d full occurrences", methodCode, len(timestamps))
	return timestamps, nil
}

// IsShipmentSlotFull проверяет заполненность вхождения, занятого слотом
// отправления активного заказа
// Отправление без слота или метод без конфигурации дают false
func (s *Service) IsShipmentSlotFull(ctx context.Context, orderToken string, shipmentIndex int) (bool, error) {
	order, err := s.cartContext.GetActiveOrder(ctx, orderToken)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return false, ErrShipmentNotFound
		}
		return false, fmt.Errorf("%w: IsShipmentSlotFull - cart context: %v", ErrInternal, err)
	}

	shipment := order.ShipmentAt(shipmentIndex)
	if shipment == nil {
		s.logger.Warn("IsShipmentSlotFull: shipment index=%d out of range for order=%d", shipmentIndex, order.ID)
		return false, ErrShipmentNotFound
	}

	if !shipment.HasSlot() {
		return false, nil
	}

	method, err := s.methodStore.GetByID(ctx, shipment.Slot.MethodID)
	if err != nil {
		if errors.Is(err, methodRepo.ErrMethodNotFound) {
			return false, ErrMethodNotFound
		}
		return false, fmt.Errorf("%w: IsShipmentSlotFull - method store: %v", ErrInternal, err)
	}

	return s.IsFull(ctx, method, shipment.Slot)
}

func (s *Service) resolveMethod(ctx context.Context, code string) (*domain.ShippingMethod, error) {
	method, err := s.methodStore.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, methodRepo.ErrMethodNotFound) {
			s.logger.Warn("capacity: method code=%s not found", code)
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("%w: resolve method: %v", ErrInternal, err)
	}
	return method, nil
}

// viewerSlot возвращает текущий слот покупателя для метода или nil
// Пустой токен означает анонимный просмотр - исключать нечего
func (s *Service) viewerSlot(ctx context.Context, orderToken string, methodID int64) (*domain.Slot, error) {
	if orderToken == "" {
		return nil, nil
	}

	order, err := s.cartContext.GetActiveOrder(ctx, orderToken)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: viewer slot - cart context: %v", ErrInternal, err)
	}

	shipment := order.ShipmentByMethod(methodID)
	if shipment == nil {
		return nil, nil
	}
	return shipment.Slot, nil
}

// isViewerSlot сравнивает слот с собственным слотом наблюдателя
// Сравнение по отправлению: у отправления не бывает двух слотов
func isViewerSlot(slot, viewerSlot *domain.Slot) bool {
	if viewerSlot == nil || viewerSlot.ShipmentID == nil {
		return false
	}
	return slot.BelongsToShipment(*viewerSlot.ShipmentID)
}
