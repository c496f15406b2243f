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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getLotSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_lot_slots"
	healthHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/health"
	listLotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_lots"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	lotsService "github.com/m04kA/SMC-ParkingService/internal/service/lots"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		beginner txmanager.TxBeginner
		pinger   healthHandler.Pinger
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		beginner = wrappedDB
		pinger = wrappedDB
	} else {
		executor = db
		beginner = txmanager.SQLBeginner{DB: db}
		pinger = db
	}

	slotRepository := slotRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)
	txMgr := txmanager.NewTransactionManager(beginner)

	// Инициализируем сервисы
	lotsSvc := lotsService.NewService(slotRepository, cfg.Pricing.PricingTiers(), log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	var bookingMetrics createBookingUC.MetricsRecorder
	if metricsCollector != nil {
		bookingMetrics = metricsCollector
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txMgr,
		bookingMetrics,
		log,
	)

	// Инициализируем handlers
	listLots := listLotsHandler.NewHandler(lotsSvc, log)
	getLotSlots := getLotSlotsHandler.NewHandler(lotsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, cfg.Server.Location(), log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// Парковки и места
	api.HandleFunc("/lots", listLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getLotSlots.Handle).Methods(http.MethodGet)

	// Бронирования
	api.HandleFunc("/book", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// CORS поверх роутера, чтобы preflight OPTIONS не упирался в Methods()
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
