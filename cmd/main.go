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
	"github.com/rs/cors"

	changeOrderStatusHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/change_order_status"
	changePasswordHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/change_password"
	createOrderHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/create_order"
	createUserHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/create_user"
	createWorkTypeHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/create_work_type"
	deleteWorkTypeHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/delete_work_type"
	exportMastersWeeklyHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/export_masters_weekly"
	getCalendarHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_calendar"
	getCarBrandsHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_car_brands"
	getDictionaryHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_dictionary"
	getDictionaryByTypeHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_dictionary_by_type"
	getMasterDetailHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_master_detail"
	getMastersWeeklyHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_masters_weekly"
	getOrderHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_order"
	getRolesHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_roles"
	getUserHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_user"
	getUsersHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_users"
	getUsersByRoleHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/get_users_by_role"
	loginHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/login"
	updateOrderHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/update_order"
	updateUserHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/update_user"
	updateUserRolesHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/update_user_roles"
	updateWorkTypeHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/update_work_type"
	validateTokenHandler "github.com/m04kA/SMC-DetailingService/internal/api/handlers/validate_token"
	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/config"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/infra/migrations"
	dictionaryRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/dictionary"
	orderRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/order"
	reportRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/report"
	userRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-DetailingService/internal/service/auth"
	dictionaryService "github.com/m04kA/SMC-DetailingService/internal/service/dictionary"
	ordersService "github.com/m04kA/SMC-DetailingService/internal/service/orders"
	reportsService "github.com/m04kA/SMC-DetailingService/internal/service/reports"
	usersService "github.com/m04kA/SMC-DetailingService/internal/service/users"
	changeOrderStatusUC "github.com/m04kA/SMC-DetailingService/internal/usecase/change_order_status"
	saveOrderUC "github.com/m04kA/SMC-DetailingService/internal/usecase/save_order"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
	"github.com/m04kA/SMC-DetailingService/pkg/metrics"
	"github.com/m04kA/SMC-DetailingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("DETAILING_CONFIG"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-DetailingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции схемы до открытия пула
	if cfg.Migrations.Enabled {
		if err := migrations.Up(cfg.Database.URL(), log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
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

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	dictionaryRepository := dictionaryRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, authService.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		Issuer: cfg.Auth.Issuer,
	}, log)
	usersSvc := usersService.NewService(userRepository, txMgr, log)
	dictionarySvc := dictionaryService.NewService(dictionaryRepository, txMgr, log)
	ordersSvc := ordersService.NewService(orderRepository, log)
	reportsSvc := reportsService.NewService(reportRepository, userRepository, log)

	// Первый администратор
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 30*time.Second)
	if err := usersSvc.EnsureAdmin(bootstrapCtx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		cancelBootstrap()
		log.Fatal("Failed to bootstrap admin: %v", err)
	}
	cancelBootstrap()

	// Инициализируем use cases
	saveOrderUseCase := saveOrderUC.NewUseCase(
		orderRepository,
		dictionaryRepository,
		userRepository,
		txMgr,
		log,
	)
	changeOrderStatusUseCase := changeOrderStatusUC.NewUseCase(
		orderRepository,
		userRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	validateToken := validateTokenHandler.NewHandler(authSvc, log)

	createOrder := createOrderHandler.NewHandler(saveOrderUseCase, log)
	updateOrder := updateOrderHandler.NewHandler(saveOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	getCalendar := getCalendarHandler.NewHandler(ordersSvc, log)
	changeOrderStatus := changeOrderStatusHandler.NewHandler(changeOrderStatusUseCase, log)

	getCarBrands := getCarBrandsHandler.NewHandler(dictionarySvc, log)
	getDictionaryByType := getDictionaryByTypeHandler.NewHandler(dictionarySvc, log)
	getDictionary := getDictionaryHandler.NewHandler(dictionarySvc, log)
	createWorkType := createWorkTypeHandler.NewHandler(dictionarySvc, log)
	updateWorkType := updateWorkTypeHandler.NewHandler(dictionarySvc, log)
	deleteWorkType := deleteWorkTypeHandler.NewHandler(dictionarySvc, log)

	getUsersByRole := getUsersByRoleHandler.NewHandler(usersSvc, log)
	getUsers := getUsersHandler.NewHandler(usersSvc, log)
	getUser := getUserHandler.NewHandler(usersSvc, log)
	updateUser := updateUserHandler.NewHandler(usersSvc, log)
	createUser := createUserHandler.NewHandler(usersSvc, log)
	getRoles := getRolesHandler.NewHandler(usersSvc, log)
	updateUserRoles := updateUserRolesHandler.NewHandler(usersSvc, log)
	changePassword := changePasswordHandler.NewHandler(usersSvc, log)

	getMastersWeekly := getMastersWeeklyHandler.NewHandler(reportsSvc, log)
	exportMastersWeekly := exportMastersWeeklyHandler.NewHandler(reportsSvc, log)
	getMasterDetail := getMasterDetailHandler.NewHandler(reportsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix(cfg.Server.BasePath).Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/validate-token", validateToken.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// Маршруты только для ADMIN и MANAGER
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager))

	// --- Заказы ---
	staff.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/orders/{id:[0-9]+}", updateOrder.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/orders/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/change/{id:[0-9]+}", changeOrderStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id:[0-9]+}", getOrder.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	protected.HandleFunc("/car/car-brands", getCarBrands.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dictionary/type/{code}", getDictionaryByType.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dictionary", getDictionary.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dictionary/work-types", createWorkType.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/dictionary/work-types/{id:[0-9]+}", updateWorkType.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/dictionary/work-types/{id:[0-9]+}", deleteWorkType.Handle).Methods(http.MethodDelete)

	// --- Пользователи ---
	protected.HandleFunc("/users/role/{code}", getUsersByRole.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/users/roles", getRoles.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/users/updateRoles/{id:[0-9]+}", updateUserRoles.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/changePassword/{username}", changePassword.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/users", getUsers.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id:[0-9]+}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}", updateUser.Handle).Methods(http.MethodPut)

	// --- Отчеты ---
	staff.HandleFunc("/reports/masters-weekly", getMastersWeekly.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/reports/masters-weekly.xlsx", exportMastersWeekly.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/master-detail/{id:[0-9]+}", getMasterDetail.Handle).Methods(http.MethodGet)

	// CORS для браузерного клиента
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
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
		log.Info("Starting server on %s%s", addr, cfg.Server.BasePath)
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
	close(stopMetricsCh)

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
