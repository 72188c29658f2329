package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/service/accounts"
	"github.com/m04kA/SMC-SlotService/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, нужны email, password и business_name"
	msgInvalidInput       = "некорректные данные регистрации"
	msgEmailTaken         = "пользователь с таким email уже зарегистрирован"
	msgSuccess            = "бизнес зарегистрирован"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, accounts.ErrEmailTaken):
			h.logger.Warn("POST /register - Email already registered")
			handlers.RespondConflict(w, msgEmailTaken)
		default:
			h.logger.Error("POST /register - Failed to register business: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /register - Business registered: business_id=%d, user_id=%d",
		result.User.BusinessID, result.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
