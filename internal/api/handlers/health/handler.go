package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

// Response состояние сервиса
type Response struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type Handler struct {
	pinger  Pinger
	storage string
	logger  Logger
}

func NewHandler(pinger Pinger, storage string, logger Logger) *Handler {
	return &Handler{
		pinger:  pinger,
		storage: storage,
		logger:  logger,
	}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Storage is unavailable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Storage: h.storage})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok", Storage: h.storage})
}
