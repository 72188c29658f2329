package cancel_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
	cancelSlot "github.com/m04kA/SMC-SlotService/internal/usecase/cancel_slot"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidSlotID    = "некорректный ID слота"
	msgNotFound         = "слот не найден"
	msgAlreadyCancelled = "слот уже отменен"
	msgStateChanged     = "состояние слота изменилось, повторите запрос"
)

type Handler struct {
	useCase CancelSlotUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/slots/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/cancel - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelSlot.Request{
		BusinessID: principal.BusinessID,
		SlotID:     slotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/cancel - Slot not found: business_id=%d, slot_id=%d",
				principal.BusinessID, slotID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, cancelSlot.ErrAlreadyCancelled):
			h.logger.Warn("POST /slots/{id}/cancel - Already cancelled: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgAlreadyCancelled)
		case errors.Is(err, cancelSlot.ErrStateChanged):
			h.logger.Warn("POST /slots/{id}/cancel - State changed concurrently: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgStateChanged)
		case errors.Is(err, cancelSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotID)
		default:
			h.logger.Error("POST /slots/{id}/cancel - Failed to cancel slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/cancel - Slot cancelled: business_id=%d, slot_id=%d", principal.BusinessID, slotID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}
