package build_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
)

// UseCase use case построения календарной ленты вхождений метода доставки
type UseCase struct {
	recurrence      RecurrenceEngine
	capacityTracker CapacityTracker
	slotFinder      SlotFinder
	methodLookup    MethodLookup
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	recurrence RecurrenceEngine,
	capacityTracker CapacityTracker,
	slotFinder SlotFinder,
	methodLookup MethodLookup,
	logger Logger,
) *UseCase {
	return &UseCase{
		recurrence:      recurrence,
		capacityTracker: capacityTracker,
		slotFinder:      slotFinder,
		methodLookup:    methodLookup,
		logger:          logger,
	}
}

// Execute строит календарную ленту: вхождения расписания в окне минус
// полные вхождения, в исходном порядке, с пометкой текущего выбора
// Сравнение моментов времени - по отформатированному UTC-ключу,
// никогда по идентичности значений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildCalendar: method=%s, window=[%s, %s]",
		req.MethodCode, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BuildCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем метод доставки по коду
	method, err := uc.methodLookup.FindByCode(ctx, req.MethodCode)
	if err != nil {
		if errors.Is(err, methodRepo.ErrMethodNotFound) {
			uc.logger.Warn("BuildCalendar: method code=%s not found", req.MethodCode)
			return nil, ErrMethodNotFound
		}
		uc.logger.Error("BuildCalendar: failed to get method code=%s: %v", req.MethodCode, err)
		return nil, fmt.Errorf("%w: failed to get method: %v", ErrInternal, err)
	}

	// 3. Метод без конфигурации - пустая лента, не ошибка
	if !method.HasSlotConfig() {
		uc.logger.Info("BuildCalendar: method code=%s has no slot config", req.MethodCode)
		return &Response{MethodCode: req.MethodCode, Events: []Event{}}, nil
	}

	// 4. Разворачиваем вхождения расписания в окне
	occurrences, err := uc.recurrence.Expand(method.SlotConfig, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("BuildCalendar: failed to expand recurrence for method code=%s: %v", req.MethodCode, err)
		return nil, fmt.Errorf("%w: failed to expand recurrence: %v", ErrInternal, err)
	}

	// 5. Текущий слот покупателя (если есть)
	currentSlot, err := uc.slotFinder.FindByMethod(ctx, req.OrderToken, method)
	if err != nil {
		uc.logger.Error("BuildCalendar: failed to find current slot: %v", err)
		return nil, fmt.Errorf("%w: failed to find current slot: %v", ErrInternal, err)
	}

	// 6. Полные вхождения от начала окна, без учета собственного слота
	fromDate := req.StartDate
	full, err := uc.capacityTracker.FindFullOccurrences(ctx, method, &fromDate, currentSlot)
	if err != nil {
		uc.logger.Error("BuildCalendar: failed to find full occurrences: %v", err)
		return nil, fmt.Errorf("%w: failed to find full occurrences: %v", ErrInternal, err)
	}

	var currentKey string
	if currentSlot != nil {
		currentKey = currentSlot.TimestampKey()
	}

	// 7. Фильтруем полные вхождения и помечаем текущий выбор
	events := make([]Event, 0, len(occurrences))
	for _, occ := range occurrences {
		key := occ.Key()
		if _, isFull := full[key]; isFull {
			continue
		}
		events = append(events, Event{
			Start:     occ.Start,
			End:       occ.End,
			IsCurrent: currentKey != "" && key == currentKey,
		})
	}

	uc.logger.Info("BuildCalendar: method=%s, %d occurrences, %d full, %d events",
		req.MethodCode, len(occurrences), len(full), len(events))

	return &Response{
		MethodCode: req.MethodCode,
		Events:     events,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MethodCode == "" {
		return fmt.Errorf("%w: methodCode is required", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	return nil
}
