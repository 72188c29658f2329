package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	bookSlot "github.com/m04kA/SMC-SlotService/internal/usecase/book_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса, нужны customer_name и customer_email"
	msgInvalidCustomer    = "некорректные данные клиента"
	msgSlotStarted        = "слот уже начался"
	msgNotFound           = "слот не найден"
	msgSlotNotAvailable   = "слот уже забронирован или отменен"
	msgBooked             = "слот забронирован"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/public/slots/{id}/book
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /public/slots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /public/slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID))
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /public/slots/{id}/book - Invalid customer: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidCustomer)
		case errors.Is(err, bookSlot.ErrSlotStarted):
			h.logger.Warn("POST /public/slots/{id}/book - Slot already started: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgSlotStarted)
		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /public/slots/{id}/book - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/slots/{id}/book - Slot not available: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		default:
			h.logger.Error("POST /public/slots/{id}/book - Failed to book slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/slots/{id}/book - Slot booked: slot_id=%d, business_id=%d",
		result.SlotID, result.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
