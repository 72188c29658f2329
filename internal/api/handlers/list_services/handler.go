package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.List(r.Context(), principal.BusinessID)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: business_id=%d, error=%v", principal.BusinessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed: business_id=%d, count=%d", principal.BusinessID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
