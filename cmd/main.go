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

	approveAccountHandler "github.com/spotbook/appointment-service/internal/api/handlers/approve_account"
	bookAppointmentHandler "github.com/spotbook/appointment-service/internal/api/handlers/book_appointment"
	createAccountHandler "github.com/spotbook/appointment-service/internal/api/handlers/create_account"
	createServiceHandler "github.com/spotbook/appointment-service/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/spotbook/appointment-service/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/spotbook/appointment-service/internal/api/handlers/get_appointment"
	getServiceHandler "github.com/spotbook/appointment-service/internal/api/handlers/get_service"
	listAccountsHandler "github.com/spotbook/appointment-service/internal/api/handlers/list_accounts"
	listAppointmentsHandler "github.com/spotbook/appointment-service/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/spotbook/appointment-service/internal/api/handlers/list_services"
	myAppointmentsHandler "github.com/spotbook/appointment-service/internal/api/handlers/my_appointments"
	paymentCallbackHandler "github.com/spotbook/appointment-service/internal/api/handlers/payment_callback"
	stripeWebhookHandler "github.com/spotbook/appointment-service/internal/api/handlers/stripe_webhook"
	updateAppointmentStatusHandler "github.com/spotbook/appointment-service/internal/api/handlers/update_appointment_status"
	updateServiceHandler "github.com/spotbook/appointment-service/internal/api/handlers/update_service"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/config"
	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/internal/geo"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	appointmentRepo "github.com/spotbook/appointment-service/internal/infra/storage/appointment"
	serviceRepo "github.com/spotbook/appointment-service/internal/infra/storage/service"
	geocoderClient "github.com/spotbook/appointment-service/internal/integrations/geocoder"
	mailerClient "github.com/spotbook/appointment-service/internal/integrations/mailer"
	accountsService "github.com/spotbook/appointment-service/internal/service/accounts"
	appointmentsService "github.com/spotbook/appointment-service/internal/service/appointments"
	catalogService "github.com/spotbook/appointment-service/internal/service/catalog"
	notificationsService "github.com/spotbook/appointment-service/internal/service/notifications"
	bookAppointmentUC "github.com/spotbook/appointment-service/internal/usecase/book_appointment"
	"github.com/spotbook/appointment-service/pkg/dbmetrics"
	"github.com/spotbook/appointment-service/pkg/logger"
	"github.com/spotbook/appointment-service/pkg/metrics"
	"github.com/spotbook/appointment-service/pkg/simpletxmanager"
	"github.com/spotbook/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	// Точка базирования провайдера услуг
	origin := domain.Location{
		Address:   cfg.Provider.Address,
		Latitude:  cfg.Provider.Latitude,
		Longitude: cfg.Provider.Longitude,
	}

	// Инициализируем геокодер по конфигурации
	var geocoder bookAppointmentUC.Geocoder
	if cfg.Geocoder.Mode == "http" {
		geocoder = geocoderClient.NewClient(
			cfg.Geocoder.URL,
			time.Duration(cfg.Geocoder.Timeout)*time.Second,
			log,
		)
		log.Info("Geocoder initialized (mode=http, url=%s, timeout=%ds)",
			cfg.Geocoder.URL, cfg.Geocoder.Timeout)
	} else {
		geocoder = geo.NewStaticGeocoder(origin, cfg.Provider.ServiceRadiusKm)
		log.Info("Geocoder initialized (mode=static, radius=%.1fkm)", cfg.Provider.ServiceRadiusKm)
	}

	// Почтовый клиент и сервис уведомлений
	mailer := mailerClient.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	notificationSvc := notificationsService.NewService(mailer, metricsCollector, log)
	log.Info("Mailer initialized (host=%s, port=%s)", cfg.SMTP.Host, cfg.SMTP.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		serviceRepository     *serviceRepo.Repository
		accountRepository     *accountRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		accountRepository = accountRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		accountRepository = accountRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(serviceRepository, accountRepository, log)
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceRepository,
		accountRepository,
		notificationSvc,
		log,
	)
	accountSvc := accountsService.NewService(accountRepository, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		accountRepository,
		geocoder,
		notificationSvc,
		txMgr,
		origin,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, metricsCollector, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	myAppointments := myAppointmentsHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	createAccount := createAccountHandler.NewHandler(accountSvc, log)
	listAccounts := listAccountsHandler.NewHandler(accountSvc, log)
	approveAccount := approveAccountHandler.NewHandler(accountSvc, log)
	paymentCallback := paymentCallbackHandler.NewHandler(accountSvc, appointmentSvc, cfg.Payments.CallbackToken, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(
		accountSvc,
		appointmentSvc,
		cfg.Payments.StripeWebhookSecret,
		time.Duration(cfg.Payments.StripeWebhookTolerance)*time.Second,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// Регистрация аккаунта
	api.HandleFunc("/accounts", createAccount.Handle).Methods(http.MethodPost)

	// Платежные колбэки (собственная аутентификация: общий секрет / подпись)
	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Account-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", myAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/admin/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	protected.HandleFunc("/admin/accounts", listAccounts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/accounts/{accountId}/approval",
		approveAccount.Handle).Methods(http.MethodPatch)

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
