package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"smarthr_backend/database"
	"smarthr_backend/internal/auth"
	"smarthr_backend/internal/config"
	"smarthr_backend/internal/email"
	"smarthr_backend/internal/handlers"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/middleware"
	"smarthr_backend/internal/models"
	"smarthr_backend/internal/routes"
	"smarthr_backend/internal/services"
	"smarthr_backend/internal/sms"
	"smarthr_backend/internal/storage"
	"smarthr_backend/internal/validator"
	"smarthr_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run boots the full HTTP server: config, database, migrations, admin
// seeding, storage provisioning, background workers and routes.
func Run() {
	if created, err := config.EnsureEnvFile(".env", ".env.example"); err != nil {
		logger.Warn("Could not materialize .env file", "error", err)
	} else if created {
		logger.Warn("Created .env from .env.example, fill in real credentials")
	}

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	if err := SeedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := initializeStorage(ctx, cfg)
	deps, pool := initializeDeps(cfg, store)
	pool.Start(ctx)
	startWorkers(ctx, db, deps)

	router := initializeGinRouter(db)
	routes.RegisterRoutes(router, initializeHandlers(deps, store), deps.Tokens)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	pool.Wait()
	logger.Info("Server stopped")
}

// BuildStorage constructs the configured storage backend.
func BuildStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
}

func initializeStorage(ctx context.Context, cfg *config.Config) storage.Storage {
	store, err := BuildStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	if provisioner, ok := store.(storage.Provisioner); ok {
		if err := provisioner.EnsureBucket(ctx); err != nil {
			logger.Fatal("Failed to provision storage bucket", "bucket", cfg.Storage.Bucket, "error", err)
		}
		logger.Info("Storage bucket ready", "bucket", cfg.Storage.Bucket)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)
	return store
}

func initializeDeps(cfg *config.Config, store storage.Storage) (services.Deps, *workers.Pool) {
	smsProvider, err := sms.NewProvider(sms.Config{
		Provider:   cfg.SMS.Provider,
		AccountSID: cfg.SMS.AccountSID,
		AuthToken:  cfg.SMS.AuthToken,
		FromNumber: cfg.SMS.FromNumber,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMS provider", "error", err)
	}

	renderer, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider, err = email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		}, renderer)
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
	} else {
		logger.Warn("SMTP is not configured, outgoing email is logged only")
		emailProvider = email.NewMockProvider(renderer)
	}

	pool := workers.NewPool(cfg.Workers.PoolSize, cfg.Workers.QueueSize)

	deps := services.Deps{
		Tokens:        auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute),
		RefreshTTL:    time.Duration(cfg.JWT.RefreshTTL) * time.Hour,
		Storage:       store,
		SMSProvider:   smsProvider,
		EmailProvider: emailProvider,
		Tasks:         pool,
		UploadLimits: services.UploadLimits{
			MaxSize:      cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		},
	}
	return deps, pool
}

// SetupRouter builds a fully wired gin engine without the background
// workers. The integration tests run the API through it.
func SetupRouter(ctx context.Context, cfg *config.Config, db *gorm.DB) *gin.Engine {
	store := initializeStorage(ctx, cfg)
	deps, pool := initializeDeps(cfg, store)
	pool.Start(ctx)

	router := initializeGinRouter(db)
	routes.RegisterRoutes(router, initializeHandlers(deps, store), deps.Tokens)
	return router
}

func startWorkers(ctx context.Context, db *gorm.DB, deps services.Deps) {
	svc := services.NewContainer(db, deps)
	workers.NewMaintenanceWorker(db, 0).Start(ctx)
	workers.NewAnalyticsWorker(svc.AnalyticsService).Start(ctx)
	workers.NewScoringWorker(db, svc, 0).Start(ctx)
	workers.NewReminderWorker(svc.InterviewService, 0).Start(ctx)
}

func initializeHandlers(deps services.Deps, store storage.Storage) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New(), deps)
	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base),
		UserHandler:        handlers.NewUserHandler(base),
		ProfileHandler:     handlers.NewProfileHandler(base),
		JobHandler:         handlers.NewJobHandler(base),
		ApplicationHandler: handlers.NewApplicationHandler(base),
		InterviewHandler:   handlers.NewInterviewHandler(base),
		AnalyticsHandler:   handlers.NewAnalyticsHandler(base),
		FileHandler:        handlers.NewFileHandler(base, store),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// SeedFirstAdmin creates the initial admin account from FIRST_ADMIN_EMAIL
// and FIRST_ADMIN_PASSWORD. Safe to call repeatedly.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set, skipping admin seeding")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.User
	result := tx.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found, creating first admin", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	username := adminEmail
	if at := strings.Index(adminEmail, "@"); at > 0 {
		username = adminEmail[:at]
	}

	admin := &models.User{
		Username:        username,
		Email:           &adminEmail,
		FullName:        "Platform Administrator",
		PasswordHash:    hash,
		Role:            models.UserRoleAdmin,
		IsEmailVerified: true,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := tx.Create(&models.Profile{UserID: admin.ID}).Error; err != nil {
		return fmt.Errorf("failed to create admin profile: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return tx.Commit().Error
}
