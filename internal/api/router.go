package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers/book_slot"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/cancel_slot"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/create_service"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/delete_service"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/generate_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_services"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/health"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/login"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/register"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
)

// Handlers обработчики всех endpoint'ов
type Handlers struct {
	Health *health.Handler

	Login    *login.Handler
	Register *register.Handler

	CreateService  *create_service.Handler
	ListServices   *list_services.Handler
	DeleteService  *delete_service.Handler
	PublicServices *get_public_services.Handler

	GenerateSlots *generate_slots.Handler
	ListSlots     *list_slots.Handler
	CancelSlot    *cancel_slot.Handler
	PublicSlots   *get_public_slots.Handler
	BookSlot      *book_slot.Handler
}

// Options настройки маршрутизации
type Options struct {
	Tokens middleware.TokenParser
	Logger middleware.Logger

	// Metrics nil, если метрики выключены
	Metrics     middleware.HTTPObserver
	MetricsPath string

	AllowedOrigins []string
}

// NewRouter собирает маршруты /api. Публичные маршруты не требуют токена,
// остальные проходят через middleware.Auth
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/health", h.Health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/login", h.Login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/register", h.Register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/public/services", h.PublicServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/slots", h.PublicSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/slots/{id:[0-9]+}/book", h.BookSlot.Handle).Methods(http.MethodPost)

	// Маршруты владельца бизнеса
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(opts.Tokens, opts.Logger))

	protected.HandleFunc("/services", h.CreateService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services", h.ListServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id:[0-9]+}", h.DeleteService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/generate", h.GenerateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots", h.ListSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{id:[0-9]+}/cancel", h.CancelSlot.Handle).Methods(http.MethodPost)

	return middleware.CORS(opts.AllowedOrigins)(middleware.Recovery(opts.Logger)(r))
}
