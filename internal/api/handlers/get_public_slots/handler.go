package get_public_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	getPublicSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_public_slots"
)

const (
	msgInvalidParams   = "нужны business_id и service_id, date в формате YYYY-MM-DD"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetPublicSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetPublicSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/public/slots?business_id=&service_id=&date=
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.QueryInt64(r, "business_id")
	if err != nil {
		h.logger.Warn("GET /public/slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	serviceID, err := handlers.QueryInt64(r, "service_id")
	if err != nil {
		h.logger.Warn("GET /public/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getPublicSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       r.URL.Query().Get("date"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getPublicSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		case errors.Is(err, getPublicSlots.ErrServiceNotFound):
			h.logger.Warn("GET /public/slots - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("GET /public/slots - Failed to get slots: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
