package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignSlotHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/assign_slot"
	getCalendarHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_calendar"
	getCurrentSlotHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_current_slot"
	getFullOccurrencesHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/get_full_occurrences"
	isSlotFullHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/is_slot_full"
	resetSlotHandler "github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers/reset_slot"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlotService/internal/config"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DeliverySlotService/internal/recurrence"
	capacityService "github.com/m04kA/SMC-DeliverySlotService/internal/service/capacity"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
	assignSlotUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/assign_slot"
	buildCalendarUC "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/build_calendar"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/logger"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/metrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-DeliverySlotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository   *slotRepo.Repository
		methodRepository *methodRepo.Repository
		orderRepository  *orderRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		methodRepository = methodRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		methodRepository = methodRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем движок расписаний и сервисы
	recurrenceEngine := recurrence.NewEngine()

	capacitySvc := capacityService.NewService(
		slotRepository,
		methodRepository,
		orderRepository,
		log,
	)
	slotsSvc := slotsService.NewService(
		orderRepository,
		methodRepository,
		slotRepository,
		log,
	)

	// Инициализируем use cases
	assignSlotUseCase := assignSlotUC.NewUseCase(
		orderRepository,
		methodRepository,
		slotRepository,
		txMgr,
		log,
	)

	buildCalendarUseCase := buildCalendarUC.NewUseCase(
		recurrenceEngine,
		capacitySvc,
		slotsSvc,
		methodRepository,
		log,
	)

	// Инициализируем handlers
	assignSlot := assignSlotHandler.NewHandler(assignSlotUseCase, log)
	resetSlot := resetSlotHandler.NewHandler(slotsSvc, log)
	getCurrentSlot := getCurrentSlotHandler.NewHandler(slotsSvc, log)
	getCalendar := getCalendarHandler.NewHandler(buildCalendarUseCase, log)
	getFullOccurrences := getFullOccurrencesHandler.NewHandler(capacitySvc, log)
	isSlotFull := isSlotFullHandler.NewHandler(capacitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (X-Order-Token опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalOrderToken)

	// Календарная лента вхождений метода доставки
	public.HandleFunc("/methods/{code}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Полные вхождения метода доставки
	public.HandleFunc("/methods/{code}/full-occurrences", getFullOccurrences.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Order-Token header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.OrderToken)

	// Назначение слота отправлению
	protected.HandleFunc("/methods/{code}/shipments/{shipmentIndex}/slot",
		assignSlot.Handle).Methods(http.MethodPut)

	// Сброс слота отправления
	protected.HandleFunc("/shipments/{shipmentIndex}/slot",
		resetSlot.Handle).Methods(http.MethodDelete)

	// Проверка переполненности выбранного слота
	protected.HandleFunc("/shipments/{shipmentIndex}/slot/full",
		isSlotFull.Handle).Methods(http.MethodGet)

	// Текущий слот заказа по коду метода
	protected.HandleFunc("/methods/{code}/slot",
		getCurrentSlot.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
