package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// Engine разворачивает правило повторения конфигурации в упорядоченный
// список временных интервалов (occurrences) внутри заданного окна
// Вся календарная арифметика делегирована rrule-go, движок отвечает
// за ограничение окном, границы правила и нормализацию в UTC
type Engine struct{}

// NewEngine создает новый движок повторений
func NewEngine() *Engine {
	return &Engine{}
}

// Expand возвращает вхождения правила в окне [windowStart, windowEnd]
// Вхождения строго упорядочены по началу, без дубликатов
// Нулевой windowStart означает "от собственного начала правила" (DTStart)
// Пустой результат - валидный исход, а не ошибка
func (e *Engine) Expand(cfg *domain.ShippingSlotConfig, windowStart, windowEnd time.Time) ([]domain.Occurrence, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidRule)
	}

	dtstart := cfg.DTStart.UTC()

	if windowStart.IsZero() {
		windowStart = dtstart
	}
	windowStart = windowStart.UTC()
	windowEnd = windowEnd.UTC()

	if windowEnd.Before(windowStart) {
		return nil, ErrInvalidWindow
	}

	starts, err := e.expandStarts(cfg, dtstart, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	duration := cfg.SlotDuration()
	occurrences := make([]domain.Occurrence, 0, len(starts))
	var prevKey string

	for _, start := range starts {
		start = start.UTC()

		// Собственная граница правила (дата окончания повторения)
		if cfg.DTEnd != nil && start.After(cfg.DTEnd.UTC()) {
			continue
		}

		// rrule-go не выдает дубликаты, но контракт движка это гарантирует
		key := domain.InstantKey(start)
		if key == prevKey {
			continue
		}
		prevKey = key

		occurrences = append(occurrences, domain.Occurrence{
			Start: start,
			End:   start.Add(duration),
		})
	}

	return occurrences, nil
}

func (e *Engine) expandStarts(cfg *domain.ShippingSlotConfig, dtstart, windowStart, windowEnd time.Time) ([]time.Time, error) {
	// Без правила - единственное вхождение в DTStart, если оно попадает в окно
	if cfg.RRule == "" {
		if dtstart.Before(windowStart) || dtstart.After(windowEnd) {
			return nil, nil
		}
		return []time.Time{dtstart}, nil
	}

	rule, err := rrule.StrToRRule(cfg.RRule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	rule.DTStart(dtstart)

	return rule.Between(windowStart, windowEnd, true), nil
}
