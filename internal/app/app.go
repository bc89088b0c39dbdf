package app

import (
	"context"
	"fmt"

	"homepro_backend/database"
	"homepro_backend/internal/auth"
	"homepro_backend/internal/config"
	"homepro_backend/internal/handlers"
	"homepro_backend/internal/logger"
	"homepro_backend/internal/middleware"
	"homepro_backend/internal/models"
	"homepro_backend/internal/payment"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/routes"
	"homepro_backend/internal/services"
	"homepro_backend/internal/validator"
	"homepro_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(cfg, gormDB, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and background workers
// into a ready gin engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, workerCtx context.Context) *gin.Engine {
	serviceContainer, worker := initializeServices(cfg, gormDB)
	worker.Start(workerCtx)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, *workers.MaintenanceWorker) {
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	quoteRepo := repositories.NewQuoteRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	processor := payment.NewGateway(payment.Config{
		BaseURL:    cfg.Payment.BaseURL,
		MerchantID: cfg.Payment.MerchantID,
		SecretKey:  cfg.Payment.SecretKey,
	})

	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo)
	jobService := services.NewJobService(jobRepo, notificationService)
	quoteService := services.NewQuoteService(quoteRepo, jobRepo, notificationService)
	paymentService := services.NewPaymentService(
		paymentRepo, jobRepo, quoteRepo, userRepo,
		notificationService, processor, cfg.Payment.FeeRate,
	)

	container := &services.ServiceContainer{
		AuthService:         authService,
		JobService:          jobService,
		QuoteService:        quoteService,
		PaymentService:      paymentService,
		NotificationService: notificationService,
	}

	worker := workers.NewMaintenanceWorker(userRepo, notificationRepo)
	return container, worker
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		JobHandler:          handlers.NewJobHandler(baseHandler, container.JobService),
		QuoteHandler:        handlers.NewQuoteHandler(baseHandler, container.QuoteService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// missing. Registration never produces admins, so this is the only way in.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", cfg.FirstAdminEmail).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Seeded first admin user", "email", cfg.FirstAdminEmail)
	return nil
}
