package reset_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
)

const (
	msgInvalidShipmentIndex = "некорректный индекс отправления"
	msgShipmentNotFound     = "отправление не найдено"
)

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

// Handle DELETE /api/v1/shipments/{shipmentIndex}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shipmentIndex, err := strconv.Atoi(vars["shipmentIndex"])
	if err != nil || shipmentIndex < 0 {
		h.logger.Warn("DELETE /shipments/{index}/slot - invalid shipment index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShipmentIndex)
		return
	}

	orderToken := middleware.OrderTokenFromContext(r.Context())

	if err := h.service.Reset(r.Context(), orderToken, shipmentIndex); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrShipmentNotFound):
			h.logger.Warn("DELETE /shipments/%d/slot - shipment not found", shipmentIndex)
			handlers.RespondNotFound(w, msgShipmentNotFound)

		default:
			h.logger.Error("DELETE /shipments/%d/slot - failed to reset slot: %v", shipmentIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shipments/%d/slot - slot reset", shipmentIndex)
	handlers.RespondNoContent(w)
}
