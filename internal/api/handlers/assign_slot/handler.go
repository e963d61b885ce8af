package assign_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	assignSlot "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/assign_slot"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidShipmentIndex = "некорректный индекс отправления"
	msgInvalidStartTime     = "некорректный формат startTime, ожидается RFC3339"
	msgShipmentNotFound     = "отправление не найдено"
	msgMethodNotFound       = "метод доставки не найден"
	msgConfigMissing        = "метод доставки не поддерживает выбор слота"
	msgSlotFull             = "на выбранное время не осталось мест"
)

type Handler struct {
	useCase AssignSlotUseCase
	logger  Logger
}

func NewHandler(useCase AssignSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/methods/{code}/shipments/{shipmentIndex}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	methodCode := vars["code"]

	shipmentIndex, err := strconv.Atoi(vars["shipmentIndex"])
	if err != nil || shipmentIndex < 0 {
		h.logger.Warn("PUT /methods/%s/shipments/{index}/slot - invalid shipment index: %v", methodCode, err)
		handlers.RespondBadRequest(w, msgInvalidShipmentIndex)
		return
	}

	var req AssignSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /methods/%s/shipments/%d/slot - invalid request body: %v", methodCode, shipmentIndex, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	orderToken := middleware.OrderTokenFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(orderToken, methodCode, shipmentIndex)
	if err != nil {
		h.logger.Warn("PUT /methods/%s/shipments/%d/slot - failed to parse startTime: %v", methodCode, shipmentIndex, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, assignSlot.ErrShipmentNotFound):
			h.logger.Warn("PUT /methods/%s/shipments/%d/slot - shipment not found", methodCode, shipmentIndex)
			handlers.RespondNotFound(w, msgShipmentNotFound)

		case errors.Is(err, assignSlot.ErrMethodNotFound):
			h.logger.Warn("PUT /methods/%s/shipments/%d/slot - method not found", methodCode, shipmentIndex)
			handlers.RespondNotFound(w, msgMethodNotFound)

		case errors.Is(err, assignSlot.ErrConfigMissing):
			h.logger.Warn("PUT /methods/%s/shipments/%d/slot - method has no slot config", methodCode, shipmentIndex)
			handlers.RespondConflict(w, msgConfigMissing)

		case errors.Is(err, assignSlot.ErrSlotFull):
			h.logger.Warn("PUT /methods/%s/shipments/%d/slot - occurrence full", methodCode, shipmentIndex)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, assignSlot.ErrInvalidInput):
			h.logger.Warn("PUT /methods/%s/shipments/%d/slot - invalid input: %v", methodCode, shipmentIndex, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /methods/%s/shipments/%d/slot - failed to assign slot: %v", methodCode, shipmentIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /methods/%s/shipments/%d/slot - slot assigned: slot_id=%d", methodCode, shipmentIndex, result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
