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

	cancelBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/get_booking"
	getFacilityBookingsHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/get_facility_bookings"
	getUserBookingsHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/get_user_bookings"
	payBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/pay_booking"
	rescheduleBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/reschedule_booking"
	updateBookingHandler "github.com/m04kA/QuickCourt-BookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/QuickCourt-BookingService/internal/api/middleware"
	"github.com/m04kA/QuickCourt-BookingService/internal/config"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
	facilityServiceClient "github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	bookingsService "github.com/m04kA/QuickCourt-BookingService/internal/service/bookings"
	cancelBookingUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/get_availability"
	rescheduleBookingUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/reschedule_booking"
	updateBookingUC "github.com/m04kA/QuickCourt-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/QuickCourt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/QuickCourt-BookingService/pkg/logger"
	"github.com/m04kA/QuickCourt-BookingService/pkg/metrics"
	"github.com/m04kA/QuickCourt-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/QuickCourt-BookingService/pkg/txmanager"
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

	log.Info("Starting QuickCourt-BookingService...")
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

	// Инициализируем клиента FacilityService
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (FacilityService=%s timeout=%ds)",
		cfg.FacilityService.URL, cfg.FacilityService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис чтения и оплаты
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityClient,
		log,
	)

	// Инициализируем use cases жизненного цикла бронирования
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		facilityClient,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		facilityClient,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(bookingRepository, log)
	checkOutUseCase := checkOutUC.NewUseCase(bookingRepository, log)
	updateBookingUseCase := updateBookingUC.NewUseCase(bookingRepository, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		facilityClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	payBooking := payBookingHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступности площадки
	api.HandleFunc("/facilities/{facilityId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение заметок бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметки о приходе и уходе
	protected.HandleFunc("/bookings/{bookingId}/checkin", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/checkout", checkOut.Handle).Methods(http.MethodPost)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPut)

	// Оплата бронирования (заглушка платёжного шлюза)
	protected.HandleFunc("/bookings/{bookingId}/payment", payBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки со статистикой выручки
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

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
