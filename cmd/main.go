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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/create_booking"
	createOffDutyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/create_off_duty"
	createServiceHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/create_service"
	deleteOffDutyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/delete_off_duty"
	deleteServiceHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_booking"
	getBookingPolicyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_booking_policy"
	getBookingsHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_bookings"
	getCustomerBookingsHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_customer_bookings"
	getWorkingHoursHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/get_working_hours"
	listNotificationsHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/list_notifications"
	listOffDutyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/list_off_duty"
	listServicesHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/list_services"
	markNotificationReadHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/mark_notification_read"
	updateBookingPolicyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/update_booking_policy"
	updateBookingStatusHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/update_booking_status"
	updateOffDutyHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/update_off_duty"
	updateServiceHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/update_service"
	updateWorkingHoursHandler "github.com/avdmnk/SVC-BookingService/internal/api/handlers/update_working_hours"
	"github.com/avdmnk/SVC-BookingService/internal/api/middleware"
	"github.com/avdmnk/SVC-BookingService/internal/config"
	"github.com/avdmnk/SVC-BookingService/internal/infra/events"
	bookingRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/catalog"
	"github.com/avdmnk/SVC-BookingService/internal/infra/storage/migrations"
	notificationRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/notification"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	accountsClient "github.com/avdmnk/SVC-BookingService/internal/integrations/accounts"
	"github.com/avdmnk/SVC-BookingService/internal/integrations/email"
	pushClient "github.com/avdmnk/SVC-BookingService/internal/integrations/push"
	bookingsService "github.com/avdmnk/SVC-BookingService/internal/service/bookings"
	catalogService "github.com/avdmnk/SVC-BookingService/internal/service/catalog"
	notificationsService "github.com/avdmnk/SVC-BookingService/internal/service/notifications"
	settingsService "github.com/avdmnk/SVC-BookingService/internal/service/settings"
	createBookingUC "github.com/avdmnk/SVC-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/avdmnk/SVC-BookingService/internal/usecase/get_available_slots"
	"github.com/avdmnk/SVC-BookingService/pkg/dbmetrics"
	"github.com/avdmnk/SVC-BookingService/pkg/logger"
	"github.com/avdmnk/SVC-BookingService/pkg/metrics"
	"github.com/avdmnk/SVC-BookingService/pkg/simpletxmanager"
	"github.com/avdmnk/SVC-BookingService/pkg/txmanager"
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

	log.Info("Starting SVC-BookingService...")
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

	// Применяем миграции
	if err := migrations.Run(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied")

	// Инициализируем интеграционных клиентов
	accounts := accountsClient.NewClient(
		cfg.Accounts.URL,
		time.Duration(cfg.Accounts.Timeout)*time.Second,
		log,
	)
	log.Info("Accounts client initialized (url=%s timeout=%ds)", cfg.Accounts.URL, cfg.Accounts.Timeout)

	// Каналы доставки уведомлений (каждый можно выключить в конфигурации)
	var publisher notificationsService.EventPublisher
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		publisher = events.NewPublisher(redisClient, cfg.Redis.Channel)
		log.Info("Redis event publisher initialized (addr=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	}

	var emailSender notificationsService.EmailSender
	if cfg.SMTP.Enabled {
		emailSender = email.NewSender(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
		log.Info("Email sender initialized (host=%s, from=%s)", cfg.SMTP.Host, cfg.SMTP.From)
	}

	var push notificationsService.PushClient
	if cfg.PushGateway.Enabled {
		push = pushClient.NewClient(
			cfg.PushGateway.URL,
			time.Duration(cfg.PushGateway.Timeout)*time.Second,
			log,
		)
		log.Info("Push client initialized (url=%s)", cfg.PushGateway.URL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		catalogRepository      *catalogRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Менеджер транзакций: обычные транзакции для настроек,
	// сериализуемые - для создания бронирований
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notificationsSvc := notificationsService.NewService(
		notificationRepository,
		publisher,
		emailSender,
		push,
		cfg.Notifications.BusinessName,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		notificationsSvc,
		log,
	)
	settingsSvc := settingsService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		accounts,
		notificationsSvc,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingsSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(settingsSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(settingsSvc, log)
	listOffDuty := listOffDutyHandler.NewHandler(settingsSvc, log)
	createOffDuty := createOffDutyHandler.NewHandler(settingsSvc, log)
	updateOffDuty := updateOffDutyHandler.NewHandler(settingsSvc, log)
	deleteOffDuty := deleteOffDutyHandler.NewHandler(settingsSvc, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(settingsSvc, log)
	updateBookingPolicy := updateBookingPolicyHandler.NewHandler(settingsSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(settingsSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationsSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Каталог услуг: клиенты видят активные, администратор с заголовками
	// может запросить и неактивные
	api.Handle("/services", middleware.Identify(http.HandlerFunc(listServices.Handle))).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание
	api.HandleFunc("/settings/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// --- Управление бронированиями ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление каталогом ---
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Управление расписанием ---
	admin.HandleFunc("/settings/working-hours/bulk", updateWorkingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/off-duty", listOffDuty.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings/off-duty", createOffDuty.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/settings/off-duty/{periodId}", updateOffDuty.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/off-duty/{periodId}", deleteOffDuty.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/booking", getBookingPolicy.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings/booking", updateBookingPolicy.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/check-availability", checkAvailability.Handle).Methods(http.MethodGet)

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
