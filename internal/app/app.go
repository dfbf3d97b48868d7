package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devanpatel28/codegrin-backend/internal/auth"
	"github.com/devanpatel28/codegrin-backend/internal/config"
	"github.com/devanpatel28/codegrin-backend/internal/database"
	"github.com/devanpatel28/codegrin-backend/internal/handlers"
	"github.com/devanpatel28/codegrin-backend/internal/logger"
	"github.com/devanpatel28/codegrin-backend/internal/mail"
	"github.com/devanpatel28/codegrin-backend/internal/middleware"
	"github.com/devanpatel28/codegrin-backend/internal/repositories"
	"github.com/devanpatel28/codegrin-backend/internal/routes"
	"github.com/devanpatel28/codegrin-backend/internal/services"
	"github.com/devanpatel28/codegrin-backend/internal/storage"
)

// Run wires the whole application together and blocks serving HTTP.
func Run() error {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	store, err := storage.NewAssetStore(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("init asset store: %w", err)
	}

	adminRepo := repositories.NewAdminRepository()
	categoryRepo := repositories.NewCategoryRepository()
	portfolioRepo := repositories.NewPortfolioRepository()

	authService := services.NewAuthService(adminRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo, categoryRepo, store, cfg.Storage.Folder)
	contactService := services.NewContactService(mail.NewSender(cfg.Email), cfg.Email.ContactEmail)

	appHandlers := &handlers.AppHandlers{
		Auth:      handlers.NewAuthHandler(authService),
		Category:  handlers.NewCategoryHandler(categoryService),
		Portfolio: handlers.NewPortfolioHandler(portfolioService, cfg.Upload),
		Contact:   handlers.NewContactHandler(contactService),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = cfg.Upload.MaxSize

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.BasePath)
	}

	routes.Setup(router, appHandlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}
