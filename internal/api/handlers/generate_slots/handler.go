package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	generateSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_slots"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный диапазон дат, ожидается YYYY-MM-DD и end_date не раньше start_date"
	msgInvalidTime        = "некорректное рабочее окно, ожидается HH:MM и end_time позже start_time"
	msgInvalidInterval    = "некорректный интервал между слотами"
	msgRangeTooLarge      = "слишком большой диапазон дат"
	msgTooManyCandidates  = "запрос порождает слишком много слотов"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidInput       = "некорректные параметры генерации"

	msgGenerated          = "создано слотов: %d, пропущено из-за пересечений: %d"
	msgReasonOverlap      = "пересекается с существующим слотом"
	msgReasonBatchOverlap = "пересекается с другим слотом этой генерации"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal.BusinessID))
	if err != nil {
		h.logger.Warn("POST /slots/generate - Generation failed: business_id=%d, service_id=%d, error=%v",
			principal.BusinessID, req.ServiceID, err)

		switch {
		case errors.Is(err, generateSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, generateSlots.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, generateSlots.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)
		case errors.Is(err, generateSlots.ErrRangeTooLarge):
			handlers.RespondBadRequest(w, msgRangeTooLarge)
		case errors.Is(err, generateSlots.ErrTooManyCandidates):
			handlers.RespondBadRequest(w, msgTooManyCandidates)
		case errors.Is(err, generateSlots.ErrServiceNotFound):
			handlers.RespondBadRequest(w, msgServiceNotFound)
		case errors.Is(err, generateSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /slots/generate - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/generate - Slots generated: business_id=%d, service_id=%d, batch_id=%s, accepted=%d, skipped=%d",
		principal.BusinessID, req.ServiceID, result.BatchID, len(result.Accepted), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
