package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobforge_backend/database"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/config"
	"jobforge_backend/internal/email"
	"jobforge_backend/internal/handlers"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/internal/routes"
	"jobforge_backend/internal/services"
	"jobforge_backend/internal/validator"
	"jobforge_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from gorm", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected", "driver", cfg.Database.Driver)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("admin seeding failed", "error", err)
	}

	engine, sessionWorker := SetupRouter(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessionWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := engine.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and returns the engine
// ready to serve, plus the background worker for the caller to start.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *workers.SessionWorker) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	codec := auth.NewTokenCodec(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute)

	var mail email.Provider
	if cfg.Email.Configured() {
		mail = email.NewSMTPProvider(cfg.Email)
	} else {
		mail = email.NewNoopProvider()
	}

	policy := services.NewAuthorizationPolicy()
	sessionTTL := time.Duration(cfg.Session.TTLDays) * 24 * time.Hour
	repostCooldown := time.Duration(cfg.Job.RepostCooldownDays) * 24 * time.Hour

	authService := services.NewAuthService(userRepo, sessionRepo, codec, mail, sessionTTL)
	userService := services.NewUserService(userRepo, companyRepo, policy)
	companyService := services.NewCompanyService(companyRepo, userRepo, policy)
	jobService := services.NewJobService(jobRepo, companyRepo, userRepo, policy, repostCooldown)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, policy)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, authService),
		UserHandler:        handlers.NewUserHandler(base, userService),
		CompanyHandler:     handlers.NewCompanyHandler(base, companyService),
		JobHandler:         handlers.NewJobHandler(base, jobService),
		ApplicationHandler: handlers.NewApplicationHandler(base, applicationService),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	routes.RegisterRoutes(engine, cfg, appHandlers, codec, userRepo)

	return engine, workers.NewSessionWorker(sessionRepo, time.Hour)
}

// seedFirstAdmin creates the bootstrap ADMIN account on first start. A
// present account is left alone, even if deactivated.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("admin credentials not configured, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("LOWER(email) = LOWER(?)", cfg.Admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := &models.User{
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("bootstrap admin created", "email", cfg.Admin.Email)
	return nil
}
