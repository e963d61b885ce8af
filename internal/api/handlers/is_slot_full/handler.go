package is_slot_full

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/capacity"
)

const (
	msgInvalidShipmentIndex = "некорректный индекс отправления"
	msgShipmentNotFound     = "отправление не найдено"
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

// Handle GET /api/v1/shipments/{shipmentIndex}/slot/full
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shipmentIndex, err := strconv.Atoi(vars["shipmentIndex"])
	if err != nil || shipmentIndex < 0 {
		h.logger.Warn("GET /shipments/{index}/slot/full - invalid shipment index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShipmentIndex)
		return
	}

	orderToken := middleware.OrderTokenFromContext(r.Context())

	full, err := h.service.IsShipmentSlotFull(r.Context(), orderToken, shipmentIndex)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrShipmentNotFound):
			h.logger.Warn("GET /shipments/%d/slot/full - shipment not found", shipmentIndex)
			handlers.RespondNotFound(w, msgShipmentNotFound)

		default:
			h.logger.Error("GET /shipments/%d/slot/full - failed to check capacity: %v", shipmentIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shipments/%d/slot/full - full=%t", shipmentIndex, full)
	handlers.RespondJSON(w, http.StatusOK, &SlotFullResponse{Full: full})
}
