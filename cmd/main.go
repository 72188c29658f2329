package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-SlotService/internal/api"
	bookSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/book_slot"
	cancelSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/cancel_slot"
	createServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/delete_service"
	generateSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/generate_slots"
	getPublicServicesHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_services"
	getPublicSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_slots"
	healthHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/health"
	listServicesHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/list_services"
	listSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/list_slots"
	loginHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/register"
	"github.com/m04kA/SMC-SlotService/internal/config"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/migrations"
	accountsService "github.com/m04kA/SMC-SlotService/internal/service/accounts"
	catalogService "github.com/m04kA/SMC-SlotService/internal/service/catalog"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
	bookSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/book_slot"
	cancelSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/cancel_slot"
	generateSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/generate_slots"
	getPublicSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/get_public_slots"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/jwtauth"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/tracing"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.toml"), "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Трассировка
	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Metrics.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store *storage.Storage

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = storage.NewMemory()
		log.Warn("Using in-memory storage, data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		if cfg.Database.RunMigrations {
			applied, err := migrations.Up(context.Background(), wrappedDB)
			if err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
			log.Info("Migrations applied: %v", applied)
		}

		store = storage.NewPostgres(wrappedDB)
	}

	// Токены
	tokens, err := jwtauth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	location := cfg.Scheduling.Location()

	// Инициализируем сервисы
	accountSvc := accountsService.NewService(store.Accounts, tokens, store.TxManager, log)
	catalogSvc := catalogService.NewService(store.Services, store.Slots, store.TxManager, log)
	slotSvc := slotsService.NewService(store.Slots, location, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(store.Services, store.Slots, metricsCollector, log,
		generateSlotsUC.Options{
			Location:      location,
			MaxDays:       cfg.Scheduling.MaxGenerationDays,
			MaxCandidates: cfg.Scheduling.MaxCandidates,
		})
	bookSlotUseCase := bookSlotUC.NewUseCase(store.Slots, metricsCollector, log)
	cancelSlotUseCase := cancelSlotUC.NewUseCase(store.Slots, metricsCollector, log)
	getPublicSlotsUseCase := getPublicSlotsUC.NewUseCase(store.Services, store.Slots, store.TxManager, location, log)

	// Инициализируем handlers и роутер
	routerOpts := api.Options{
		Tokens:         tokens,
		Logger:         log,
		MetricsPath:    cfg.Metrics.Path,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
	}

	router := api.NewRouter(api.Handlers{
		Health:         healthHandler.NewHandler(store.Pinger, store.Driver, log),
		Login:          loginHandler.NewHandler(accountSvc, log),
		Register:       registerHandler.NewHandler(accountSvc, log),
		CreateService:  createServiceHandler.NewHandler(catalogSvc, log),
		ListServices:   listServicesHandler.NewHandler(catalogSvc, log),
		DeleteService:  deleteServiceHandler.NewHandler(catalogSvc, log),
		PublicServices: getPublicServicesHandler.NewHandler(catalogSvc, log),
		GenerateSlots:  generateSlotsHandler.NewHandler(generateSlotsUseCase, log),
		ListSlots:      listSlotsHandler.NewHandler(slotSvc, log),
		CancelSlot:     cancelSlotHandler.NewHandler(cancelSlotUseCase, log),
		PublicSlots:    getPublicSlotsHandler.NewHandler(getPublicSlotsUseCase, log),
		BookSlot:       bookSlotHandler.NewHandler(bookSlotUseCase, log),
	}, routerOpts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(router, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (storage=%s, timezone=%s)", addr, store.Driver, location)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
