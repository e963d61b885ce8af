package get_current_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
)

const msgMethodNotFound = "метод доставки не найден"

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/methods/{code}/slot
// Назначенного слота может не быть - это 204, а не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	methodCode := mux.Vars(r)["code"]
	orderToken := middleware.OrderTokenFromContext(r.Context())

	result, err := h.service.GetCurrentSlotByCode(r.Context(), orderToken, methodCode)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrMethodNotFound):
			h.logger.Warn("GET /methods/%s/slot - method not found", methodCode)
			handlers.RespondNotFound(w, msgMethodNotFound)

		default:
			h.logger.Error("GET /methods/%s/slot - failed to get current slot: %v", methodCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result == nil {
		h.logger.Info("GET /methods/%s/slot - no slot assigned", methodCode)
		handlers.RespondNoContent(w)
		return
	}

	h.logger.Info("GET /methods/%s/slot - slot_id=%d", methodCode, result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
