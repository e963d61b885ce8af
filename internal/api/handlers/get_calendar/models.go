package get_calendar

import (
	"time"

	buildCalendar "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/build_calendar"
)

// CalendarResponse модель ответа с календарной лентой
type CalendarResponse struct {
	MethodCode string          `json:"methodCode"`
	Events     []CalendarEvent `json:"events"`
}

// CalendarEvent одно выбираемое вхождение расписания
type CalendarEvent struct {
	Start     string `json:"start"`     // RFC3339, UTC
	End       string `json:"end"`       // RFC3339, UTC
	IsCurrent bool   `json:"isCurrent"` // Вхождение выбрано покупателем сейчас
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP-модель
func FromUseCaseResponse(resp *buildCalendar.Response) *CalendarResponse {
	events := make([]CalendarEvent, 0, len(resp.Events))
	for _, ev := range resp.Events {
		events = append(events, CalendarEvent{
			Start:     ev.Start.UTC().Format(time.RFC3339),
			End:       ev.End.UTC().Format(time.RFC3339),
			IsCurrent: ev.IsCurrent,
		})
	}

	return &CalendarResponse{
		MethodCode: resp.MethodCode,
		Events:     events,
	}
}
