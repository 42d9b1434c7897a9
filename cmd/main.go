package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/cancel_appointment"
	closeSessionHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/close_session"
	confirmBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/confirm_booking"
	getContractHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_contract"
	getDaySlotsHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_day_slots"
	getMonthMarkersHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_month_markers"
	getScheduleHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_schedule"
	getSessionHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_session"
	getUserAppointmentsHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_user_appointments"
	healthHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/health"
	openSessionHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/open_session"
	toggleSlotHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/toggle_slot"
	updateScheduleHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/config"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/internal/infra/lock"
	"github.com/m04kA/SMC-CoachingService/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/appointment"
	contractRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/contract"
	outboxRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/outbox"
	scheduleRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/SMC-CoachingService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/SMC-CoachingService/internal/service/appointments"
	contractsService "github.com/m04kA/SMC-CoachingService/internal/service/contracts"
	scheduleService "github.com/m04kA/SMC-CoachingService/internal/service/schedule"
	sessionsService "github.com/m04kA/SMC-CoachingService/internal/service/sessions"
	confirmBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking"
	getDaySlotsUC "github.com/m04kA/SMC-CoachingService/internal/usecase/get_day_slots"
	getMonthMarkersUC "github.com/m04kA/SMC-CoachingService/internal/usecase/get_month_markers"
	toggleSlotUC "github.com/m04kA/SMC-CoachingService/internal/usecase/toggle_slot"
	expiryWorker "github.com/m04kA/SMC-CoachingService/internal/worker/expiry"
	outboxWorker "github.com/m04kA/SMC-CoachingService/internal/worker/outbox"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/metrics"
	"github.com/m04kA/SMC-CoachingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CoachingService/pkg/tracing"
	"github.com/m04kA/SMC-CoachingService/pkg/txmanager"
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

	log.Info("Starting SMC-CoachingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load schedule timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	// Трейсинг (OTLP); пропагаторы W3C ставятся всегда, чтобы traceparent попадал в outbox
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

	// Инициализируем метрики (если включены)
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

	// Подключаемся к Redis: сессии бронирования, блокировки календарей, кэш каталога
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	var catalogClient catalogServiceClient.ServiceGetter = catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	if cfg.CatalogService.CacheTTLSeconds > 0 {
		catalogClient = catalogServiceClient.NewCachedClient(
			catalogClient,
			redisClient,
			time.Duration(cfg.CatalogService.CacheTTLSeconds)*time.Second,
			log,
		)
	}
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds cache_ttl=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.CatalogService.CacheTTLSeconds)

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	var txMgr *txmanager.TransactionManager
	retries := txmanager.WithMaxRetries(cfg.Booking.MaxSerializableRetries)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB, retries)
	} else {
		txMgr = simpletxmanager.NewTransactionManager(db, retries)
	}

	appointmentRepository := appointmentRepo.NewRepository(executor)
	contractRepository := contractRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	outboxRepository := outboxRepo.NewRepository(executor)

	sessionStore := session.NewStore(redisClient, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	locker := lock.NewLocker(redisClient, time.Duration(cfg.Booking.LockTTLSeconds)*time.Second)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		domain.WorkingHours{StartHour: cfg.Schedule.WorkStartHour, EndHour: cfg.Schedule.WorkEndHour},
		location,
		log,
	)
	sessionsSvc := sessionsService.NewService(
		sessionStore,
		catalogClient,
		&sessionsService.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		contractRepository,
		outboxRepository,
		txMgr,
		&appointmentsService.RealTimeProvider{},
		log,
	)
	contractsSvc := contractsService.NewService(
		contractRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getMonthMarkersUseCase := getMonthMarkersUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		scheduleSvc,
		sessionStore,
		metricsCollector,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		scheduleSvc,
		sessionStore,
		metricsCollector,
		log,
	)
	toggleSlotUseCase := toggleSlotUC.NewUseCase(
		sessionStore,
		metricsCollector,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		sessionStore,
		catalogClient,
		scheduleSvc,
		locker,
		appointmentRepository,
		contractRepository,
		outboxRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getMonthMarkers := getMonthMarkersHandler.NewHandler(getMonthMarkersUseCase, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	toggleSlot := toggleSlotHandler.NewHandler(toggleSlotUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	openSession := openSessionHandler.NewHandler(sessionsSvc, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionsSvc, log)
	getContract := getContractHandler.NewHandler(contractsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	health := healthHandler.NewHandler(log,
		healthHandler.Check{Name: "postgres", Check: db.PingContext},
		healthHandler.Check{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoints
	r.HandleFunc("/health/live", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.Readiness).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Рабочие часы специалиста
	api.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		protected.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Доступность ---
	// Отметки дней месяца
	protected.HandleFunc("/professionals/{professionalId}/services/{serviceId}/month-markers",
		getMonthMarkers.Handle).Methods(http.MethodGet)

	// Слоты выбранного дня
	protected.HandleFunc("/professionals/{professionalId}/services/{serviceId}/day-slots",
		getDaySlots.Handle).Methods(http.MethodGet)

	// --- Сессия бронирования ---
	protected.HandleFunc("/booking-sessions", openSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)

	// Выбор слота и подтверждение
	protected.HandleFunc("/booking-sessions/{sessionId}/toggle", toggleSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Контракты и встречи ---
	protected.HandleFunc("/contracts/{contractId}", getContract.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Расписание (для специалистов) ---
	protected.HandleFunc("/professionals/{professionalId}/schedule",
		updateSchedule.Handle).Methods(http.MethodPut)

	// Запускаем фоновые воркеры
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	expiry := expiryWorker.NewWorker(
		contractRepository,
		time.Duration(cfg.Workers.ContractExpiryIntervalSeconds)*time.Second,
		log,
	)
	workers.Add(1)
	go func() {
		defer workers.Done()
		expiry.Run(workersCtx)
	}()

	if cfg.Kafka.Enabled {
		brokers := outboxWorker.SplitBrokers(cfg.Kafka.Brokers)
		if len(brokers) == 0 {
			log.Fatal("Kafka enabled but no brokers configured")
		}

		writer := outboxWorker.NewKafkaWriter(brokers)
		defer writer.Close()

		publisher := outboxWorker.NewPublisher(
			outboxRepository,
			txMgr,
			writer,
			metricsCollector,
			log,
			outboxWorker.Config{
				TopicPrefix:  cfg.Kafka.TopicPrefix,
				PollInterval: time.Duration(cfg.Kafka.PollIntervalMs) * time.Millisecond,
				BatchSize:    cfg.Kafka.BatchSize,
			},
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			publisher.Run(workersCtx)
		}()
		log.Info("Outbox publisher enabled (brokers=%v, topic_prefix=%s)", brokers, cfg.Kafka.TopicPrefix)
	} else {
		log.Warn("Kafka disabled: outbox events stay in the database")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
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

	// Останавливаем воркеры
	stopWorkers()
	workers.Wait()
	log.Info("Workers stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
