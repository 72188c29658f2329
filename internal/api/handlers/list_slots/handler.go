package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidFilter = "некорректные параметры фильтра: service_id, status, from, to"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/slots?service_id=&status=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	q := r.URL.Query()
	req := &models.ListSlotsRequest{
		BusinessID: principal.BusinessID,
		ServiceID:  q.Get("service_id"),
		Status:     q.Get("status"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid filter: business_id=%d, error=%v", principal.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /slots - Failed to list slots: business_id=%d, error=%v", principal.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slots listed: business_id=%d, count=%d", principal.BusinessID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
