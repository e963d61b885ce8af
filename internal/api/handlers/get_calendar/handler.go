package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	buildCalendar "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/build_calendar"
)

const (
	msgInvalidStartParam = "некорректный параметр start, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidEndParam   = "некорректный параметр end, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidWindow     = "некорректное окно календаря"
	msgMethodNotFound    = "метод доставки не найден"
)

type Handler struct {
	useCase BuildCalendarUseCase
	logger  Logger
}

func NewHandler(useCase BuildCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/methods/{code}/calendar?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	methodCode := vars["code"]

	startDate, err := parseWindowParam(r.URL.Query().Get("start"), false)
	if err != nil {
		h.logger.Warn("GET /methods/%s/calendar - invalid start param: %v", methodCode, err)
		handlers.RespondBadRequest(w, msgInvalidStartParam)
		return
	}

	endDate, err := parseWindowParam(r.URL.Query().Get("end"), true)
	if err != nil {
		h.logger.Warn("GET /methods/%s/calendar - invalid end param: %v", methodCode, err)
		handlers.RespondBadRequest(w, msgInvalidEndParam)
		return
	}

	req := &buildCalendar.Request{
		OrderToken: middleware.OrderTokenFromContext(r.Context()),
		MethodCode: methodCode,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, buildCalendar.ErrMethodNotFound):
			h.logger.Warn("GET /methods/%s/calendar - method not found", methodCode)
			handlers.RespondNotFound(w, msgMethodNotFound)

		case errors.Is(err, buildCalendar.ErrInvalidInput):
			h.logger.Warn("GET /methods/%s/calendar - invalid input: %v", methodCode, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /methods/%s/calendar - failed to build calendar: %v", methodCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /methods/%s/calendar - events: %d", methodCode, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseWindowParam принимает RFC3339 или дату YYYY-MM-DD.
// Для конца окна дата без времени трактуется как конец дня.
func parseWindowParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}

	if endOfDay {
		return day.Add(24*time.Hour - time.Second).UTC(), nil
	}
	return day.UTC(), nil
}
