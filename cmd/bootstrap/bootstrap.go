package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telemed-scheduler/config"
	deliveryHttp "telemed-scheduler/internal/delivery/http"
	"telemed-scheduler/internal/delivery/http/handler"
	"telemed-scheduler/internal/delivery/http/middleware"
	"telemed-scheduler/internal/infrastructure/cache"
	"telemed-scheduler/internal/infrastructure/database"
	"telemed-scheduler/internal/infrastructure/messaging"
	"telemed-scheduler/internal/repository"
	"telemed-scheduler/internal/service"
	"telemed-scheduler/internal/usecase"
	"telemed-scheduler/pkg/clock"
	"telemed-scheduler/pkg/jwt"
	"telemed-scheduler/pkg/timezone"
	"telemed-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Broker       *messaging.RabbitMQBroker
	Server       *http.Server
	ExpiryWorker *service.ExpiryWorker

	workerCancel context.CancelFunc
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	broker, err := messaging.NewRabbitMQBroker(cfg.AMQP.URL, cfg.AMQP.ReminderQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	app.Broker = broker
	logrus.Info("RabbitMQ connected successfully")

	app.Server, app.ExpiryWorker = initializeServer(cfg, db, redisClient, broker)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, usecases, handlers and
// middleware into the HTTP server and background worker.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, broker *messaging.RabbitMQBroker) (*http.Server, *service.ExpiryWorker) {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	clk := clock.New()
	zones := timezone.NewResolver()

	// Repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	symptomRepo := repository.NewSymptomRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	reminderScheduler := service.NewReminderScheduler(broker, log)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, auditService, zones)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, auditService, zones)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, userRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, reminderScheduler, clk, zones)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, appointmentRepo, doctorRepo)
	symptomUsecase := usecase.NewSymptomUsecase(db, log, symptomRepo, appointmentRepo)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, medicalRecordRepo, doctorRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator, clk)
	symptomHandler := handler.NewSymptomHandler(symptomUsecase, customValidator)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	metricsMiddleware := middleware.NewMetricsMiddleware()

	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		doctorHandler,
		appointmentHandler,
		prescriptionHandler,
		symptomHandler,
		medicalRecordHandler,
		authMiddleware,
		corsMiddleware,
		metricsMiddleware,
	)
	httpRouter := router.Setup()

	expiryWorker := service.NewExpiryWorker(prescriptionUsecase, log, cfg.Worker.ExpirySweepInterval)

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, expiryWorker
}

// Run starts the HTTP server and background worker, then blocks until
// an interrupt signal triggers graceful shutdown.
func (app *App) Run() {
	workerCtx, cancel := context.WithCancel(context.Background())
	app.workerCancel = cancel
	go app.ExpiryWorker.Start(workerCtx)

	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	if app.workerCancel != nil {
		app.workerCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, message broker)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.Broker != nil {
		app.Broker.Close()
	}
}
