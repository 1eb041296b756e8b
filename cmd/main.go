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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	bookingsHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/bookings"
	capabilitiesHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/capabilities"
	catalogHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/catalog"
	changelogHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/changelog"
	invitationsHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/invitations"
	rentersHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/renters"
	settingsHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/settings"
	sweepsHandler "github.com/m04kA/SMC-ReceptionService/internal/api/handlers/sweeps"
	"github.com/m04kA/SMC-ReceptionService/internal/api/middleware"
	"github.com/m04kA/SMC-ReceptionService/internal/config"
	"github.com/m04kA/SMC-ReceptionService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	changelogRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/changelog"
	directoryRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/directory"
	durationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/duration"
	facilityRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/facility"
	garageSlotRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/garageslot"
	invitationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/invitation"
	paymentRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/payment"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	sequenceRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/sequence"
	settingsRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ReceptionService/internal/scheduler"
	accessService "github.com/m04kA/SMC-ReceptionService/internal/service/access"
	bookingsService "github.com/m04kA/SMC-ReceptionService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ReceptionService/internal/service/catalog"
	changelogService "github.com/m04kA/SMC-ReceptionService/internal/service/changelog"
	invitationsService "github.com/m04kA/SMC-ReceptionService/internal/service/invitations"
	rentersService "github.com/m04kA/SMC-ReceptionService/internal/service/renters"
	settingsService "github.com/m04kA/SMC-ReceptionService/internal/service/settings"
	checkDuePaymentsUC "github.com/m04kA/SMC-ReceptionService/internal/usecase/check_due_payments"
	checkOverdueInvitationsUC "github.com/m04kA/SMC-ReceptionService/internal/usecase/check_overdue_invitations"
	invitationWorkflowUC "github.com/m04kA/SMC-ReceptionService/internal/usecase/invitation_workflow"
	saveBookingUC "github.com/m04kA/SMC-ReceptionService/internal/usecase/save_booking"
	"github.com/m04kA/SMC-ReceptionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReceptionService/pkg/logger"
	"github.com/m04kA/SMC-ReceptionService/pkg/metrics"
	"github.com/m04kA/SMC-ReceptionService/pkg/txmanager"
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

	log.Info("Starting SMC-ReceptionService...")

	location, err := cfg.Reception.Location()
	if err != nil {
		log.Fatal("Invalid reception time zone %q: %v", cfg.Reception.TimeZone, err)
	}

	// Метрики (nil, если выключены: все методы *metrics.Metrics это допускают)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

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
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш настроек и распределенные блокировки
	var store cache.Store
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		store = cache.NewRedisStore(redisClient, cfg.Redis.KeyPrefix)
		log.Info("Redis connected (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		store = cache.NewMemoryStore()
		log.Warn("Redis is not configured: settings cache and job locks are process-local")
	}
	locker := cache.NewLocker(store)

	// Почта
	var transport mailer.Transport
	switch cfg.SMTP.Transport {
	case "smtp":
		smtpTransport, err := mailer.NewSMTPTransport(mailer.SMTPConfig{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			Username:      cfg.SMTP.Username,
			Password:      cfg.SMTP.Password,
			FromEmail:     cfg.SMTP.FromEmail,
			FromName:      cfg.SMTP.FromName,
			UseSTARTTLS:   cfg.SMTP.UseSTARTTLS,
			SkipTLSVerify: cfg.SMTP.SkipTLSVerify,
			Timeout:       time.Duration(cfg.SMTP.Timeout) * time.Second,
		})
		if err != nil {
			log.Fatal("Failed to configure SMTP transport: %v", err)
		}
		transport = smtpTransport
		log.Info("SMTP transport configured (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	default:
		transport = mailer.NewLogTransport(log)
		log.Warn("Mail transport is 'log': notifications are written to the log only")
	}
	notifier, err := mailer.NewNotifier(transport, cfg.SMTP.MessageDomain, log, metricsCollector)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	changelogRepository := changelogRepo.NewRepository(wrappedDB)
	directoryRepository := directoryRepo.NewRepository(wrappedDB)
	durationRepository := durationRepo.NewRepository(wrappedDB)
	facilityRepository := facilityRepo.NewRepository(wrappedDB)
	garageSlotRepository := garageSlotRepo.NewRepository(wrappedDB)
	invitationRepository := invitationRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	renterRepository := renterRepo.NewRepository(wrappedDB)
	sequenceRepository := sequenceRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Сервисы
	changelogSvc := changelogService.NewService(changelogRepository, log)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		store,
		time.Duration(cfg.Reception.SettingsCacheTTL)*time.Second,
		changelogSvc,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(
		durationRepository,
		facilityRepository,
		changelogSvc,
		txMgr,
		log,
	)
	rentersSvc := rentersService.NewService(
		renterRepository,
		directoryRepository,
		garageSlotRepository,
		paymentRepository,
		invitationRepository,
		changelogSvc,
		txMgr,
		cfg.Reception.DefaultCurrency,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		renterRepository,
		changelogSvc,
		txMgr,
		log,
	)
	invitationSvc := invitationsService.NewService(invitationRepository, renterRepository, log)
	accessSvc := accessService.NewService(
		renterRepository,
		bookingRepository,
		invitationRepository,
		garageSlotRepository,
		paymentRepository,
	)

	// Use cases
	saveBookingUseCase := saveBookingUC.NewUseCase(
		bookingRepository,
		durationRepository,
		facilityRepository,
		renterRepository,
		settingsSvc,
		changelogSvc,
		metricsCollector,
		txMgr,
		location,
		log,
	)
	invitationWorkflowUseCase := invitationWorkflowUC.NewUseCase(
		invitationRepository,
		renterRepository,
		sequenceRepository,
		settingsSvc,
		notifier,
		changelogSvc,
		txMgr,
		invitationWorkflowUC.Config{
			SequenceName:   cfg.Reception.InvitationSeq,
			SequencePrefix: cfg.Reception.InvitationPrefix,
			Location:       location,
		},
		log,
	)
	overdueUseCase := checkOverdueInvitationsUC.NewUseCase(
		invitationRepository,
		changelogSvc,
		metricsCollector,
		txMgr,
		log,
	)
	duePaymentsUseCase := checkDuePaymentsUC.NewUseCase(
		paymentRepository,
		notifier,
		changelogSvc,
		metricsCollector,
		txMgr,
		location,
		log,
	)

	// Планировщик периодических проверок
	jobs := scheduler.New(locker, time.Duration(cfg.Scheduler.LockTTL)*time.Second, location, log)
	overdueSpec, dueSpec := "", ""
	if cfg.Scheduler.Enabled {
		overdueSpec, dueSpec = cfg.Scheduler.OverdueInvitations, cfg.Scheduler.DuePayments
	}
	if err := jobs.Register(checkOverdueInvitationsUC.Name, overdueSpec, func(ctx context.Context) error {
		_, err := overdueUseCase.Execute(ctx)
		return err
	}); err != nil {
		log.Fatal("Failed to register job %s: %v", checkOverdueInvitationsUC.Name, err)
	}
	if err := jobs.Register(checkDuePaymentsUC.Name, dueSpec, func(ctx context.Context) error {
		_, err := duePaymentsUseCase.Execute(ctx)
		return err
	}); err != nil {
		log.Fatal("Failed to register job %s: %v", checkDuePaymentsUC.Name, err)
	}
	jobs.Start()
	log.Info("Scheduler started (enabled=%t, overdue=%q, due_payments=%q, tz=%s)",
		cfg.Scheduler.Enabled, overdueSpec, dueSpec, location)

	// Handlers
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	renters := rentersHandler.NewHandler(rentersSvc, log)
	bookings := bookingsHandler.NewHandler(bookingSvc, saveBookingUseCase, log)
	invitations := invitationsHandler.NewHandler(invitationSvc, invitationWorkflowUseCase, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)
	changes := changelogHandler.NewHandler(changelogSvc, log)
	capabilities := capabilitiesHandler.NewHandler(accessSvc, log)
	sweeps := sweepsHandler.NewHandler(jobs, overdueUseCase, duePaymentsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют X-User-ID существующего сотрудника
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(directoryRepository, log))

	// --- Справочники ---
	protected.HandleFunc("/durations", catalog.ListDurations).Methods(http.MethodGet)
	protected.HandleFunc("/durations", catalog.CreateDuration).Methods(http.MethodPost)
	protected.HandleFunc("/durations/{durationId}", catalog.UpdateDuration).Methods(http.MethodPut)
	protected.HandleFunc("/durations/{durationId}", catalog.DeleteDuration).Methods(http.MethodDelete)
	protected.HandleFunc("/facilities", catalog.ListFacilities).Methods(http.MethodGet)
	protected.HandleFunc("/facilities", catalog.CreateFacility).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}", catalog.UpdateFacility).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}", catalog.DeleteFacility).Methods(http.MethodDelete)

	// --- Компании и сотрудники ---
	protected.HandleFunc("/companies", renters.CreateCompany).Methods(http.MethodPost)
	protected.HandleFunc("/officers", renters.CreateOfficer).Methods(http.MethodPost)

	// --- Арендаторы ---
	protected.HandleFunc("/renters", renters.List).Methods(http.MethodGet)
	protected.HandleFunc("/renters", renters.Create).Methods(http.MethodPost)
	protected.HandleFunc("/renters/{renterId}", renters.Get).Methods(http.MethodGet)
	protected.HandleFunc("/renters/{renterId}", renters.Update).Methods(http.MethodPut)
	protected.HandleFunc("/renters/{renterId}", renters.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/renters/{renterId}/invitations", renters.ListInvitations).Methods(http.MethodGet)
	protected.HandleFunc("/renters/{renterId}/garage-slots", renters.AddGarageSlot).Methods(http.MethodPost)
	protected.HandleFunc("/garage-slots/{slotId}", renters.UpdateGarageSlot).Methods(http.MethodPut)
	protected.HandleFunc("/garage-slots/{slotId}", renters.DeleteGarageSlot).Methods(http.MethodDelete)
	protected.HandleFunc("/renters/{renterId}/payments", renters.AddPayment).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}", renters.UpdatePayment).Methods(http.MethodPut)
	protected.HandleFunc("/payments/{paymentId}", renters.DeletePayment).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Update).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Delete).Methods(http.MethodDelete)

	// --- Приглашения ---
	protected.HandleFunc("/invitations", invitations.List).Methods(http.MethodGet)
	protected.HandleFunc("/invitations", invitations.Create).Methods(http.MethodPost)
	protected.HandleFunc("/invitations/{invitationId}", invitations.Get).Methods(http.MethodGet)
	protected.HandleFunc("/invitations/{invitationId}", invitations.Update).Methods(http.MethodPut)
	protected.HandleFunc("/invitations/{invitationId}/confirm", invitations.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/invitations/{invitationId}/attend", invitations.Attend).Methods(http.MethodPost)
	protected.HandleFunc("/invitations/{invitationId}/cancel", invitations.Cancel).Methods(http.MethodPost)

	// --- Настройки, журнал, права ---
	protected.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/settings", settings.Update).Methods(http.MethodPut)
	protected.HandleFunc("/changelog/{model}/{recordId}", changes.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/capabilities/{model}/{recordId}", capabilities.Handle).Methods(http.MethodGet)

	// --- Ручной запуск периодических проверок ---
	protected.HandleFunc("/sweeps/overdue-invitations", sweeps.OverdueInvitations).Methods(http.MethodPost)
	protected.HandleFunc("/sweeps/due-payments", sweeps.DuePayments).Methods(http.MethodPost)

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

	// Дожидаемся завершения запущенных проверок
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler did not stop in time: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
