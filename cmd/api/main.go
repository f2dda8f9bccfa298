package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frigo-service/internal/auth"
	"frigo-service/internal/config"
	"frigo-service/internal/events"
	"frigo-service/internal/handlers"
	"frigo-service/internal/lookup"
	"frigo-service/internal/repository"
	"frigo-service/internal/storage"
	"frigo-service/pkg/logger"
	"frigo-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "frigo-service/docs" // Import docs for Swagger
)

// @title           Frigo Service API
// @version         1.0
// @description     Perishable food inventory: records keyed by barcode, ranked by freshness.

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Frigo Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("storage_backend", cfg.StorageBackend),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, err := storage.NewStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()
	appLogger.Info("✅ Store initialized successfully")

	eventBus, closeEvents := events.NewPublisher(cfg, appLogger)
	defer closeEvents()

	repo := repository.NewInventoryRepository(store, appLogger)
	productLookup := lookup.NewOpenFoodFactsClient(
		cfg.LookupBaseURL,
		time.Duration(cfg.LookupTimeoutSeconds)*time.Second,
		appLogger,
	)

	inventoryHandler := handlers.NewInventoryHandler(appLogger, repo, eventBus, cfg.ExpiringSoonLimit)
	productHandler := handlers.NewProductHandler(appLogger, productLookup, repo)

	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		protected := v1.Group("")
		if cfg.AuthEnabled {
			jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute, appLogger)
			authHandler := auth.NewAuthHandler(jwtManager, cfg.AuthUsername, cfg.AuthPasswordHash, appLogger)
			if cfg.AuthPasswordHash == "" {
				appLogger.Warn("AUTH_ENABLED is set but AUTH_PASSWORD_HASH is empty, every login will be refused")
			}

			v1.POST("/auth/login", authHandler.Login)
			protected.Use(middleware.AuthMiddleware(jwtManager, appLogger))
			appLogger.Info("🔐 Authentication enabled", zap.String("username", cfg.AuthUsername))
		}

		inventory := protected.Group("/inventory")
		{
			inventory.GET("/records", inventoryHandler.ListRecords)
			inventory.GET("/records/:id", inventoryHandler.GetRecord)
			inventory.POST("/records", inventoryHandler.SaveRecord)
			inventory.PATCH("/records/:id", inventoryHandler.UpdateRecord)
			inventory.PUT("/records/:id/quantity", inventoryHandler.UpdateQuantity)
			inventory.DELETE("/records/:id", inventoryHandler.DeleteRecord)
			inventory.GET("/expiring", inventoryHandler.ExpiringSoon)
			inventory.GET("/summary", inventoryHandler.Summary)
		}

		protected.GET("/products/:barcode", productHandler.Scan)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "frigo-service",
	})
}
