package get_full_occurrences

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/capacity"
)

const (
	msgInvalidFromParam = "некорректный параметр from, ожидается RFC3339 или YYYY-MM-DD"
	msgMethodNotFound   = "метод доставки не найден"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/methods/{code}/full-occurrences?from=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	methodCode := vars["code"]

	var fromDate *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := parseFromParam(raw)
		if err != nil {
			h.logger.Warn("GET /methods/%s/full-occurrences - invalid from param: %v", methodCode, err)
			handlers.RespondBadRequest(w, msgInvalidFromParam)
			return
		}
		fromDate = &parsed
	}

	orderToken := middleware.OrderTokenFromContext(r.Context())

	timestamps, err := h.service.FindFullOccurrencesByCode(r.Context(), orderToken, methodCode, fromDate)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrMethodNotFound):
			h.logger.Warn("GET /methods/%s/full-occurrences - method not found", methodCode)
			handlers.RespondNotFound(w, msgMethodNotFound)

		default:
			h.logger.Error("GET /methods/%s/full-occurrences - failed to find full occurrences: %v", methodCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /methods/%s/full-occurrences - found: %d", methodCode, len(timestamps))
	handlers.RespondJSON(w, http.StatusOK, FromTimestamps(methodCode, timestamps))
}

func parseFromParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return day.UTC(), nil
}
