package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rentiva/internal/caching"
	"rentiva/internal/common"
	"rentiva/internal/config"
	"rentiva/internal/handlers"
	"rentiva/internal/jobs"
	"rentiva/internal/middleware"
	"rentiva/internal/repositories"
	"rentiva/internal/services"
	"rentiva/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Database
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.ApplyMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Object storage
	storage, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	for _, bucket := range []string{cfg.ReceiptBucket, cfg.PhotoBucket} {
		if err := storage.EnsureBucketExists(ctx, bucket); err != nil {
			log.Fatalf("Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Task queue
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	managerRepo := repositories.NewManagerRepo(pool)
	propertyRepo := repositories.NewPropertyRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	leaseRepo := repositories.NewLeaseRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)

	// Services
	tenantSvc := services.NewTenantService(tenantRepo, propertyRepo, leaseRepo)
	managerSvc := services.NewManagerService(managerRepo)
	propertySvc := services.NewPropertyService(propertyRepo, cacheSvc, storage, cfg.PhotoBucket)
	applicationSvc := services.NewApplicationService(pool, applicationRepo, propertyRepo, tenantRepo, leaseRepo, paymentRepo)
	leaseSvc := services.NewLeaseService(leaseRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, leaseRepo, storage, cfg.ReceiptBucket)
	notificationSvc := services.NewNotificationService(cfg.EmailRelayURL, cfg.EmailFrom)

	// Background processing
	emailWorker := jobs.NewEmailWorker(redisOpt, notificationSvc)
	if err := emailWorker.Start(); err != nil {
		log.Fatalf("Failed to start email worker: %v", err)
	}
	defer emailWorker.Stop()

	scheduler, err := jobs.NewJobScheduler(paymentRepo, leaseRepo, tenantRepo, asynqClient)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	propertyHandlers := handlers.NewPropertyHandlers(propertySvc, managerSvc)
	applicationHandlers := handlers.NewApplicationHandlers(applicationSvc, tenantSvc, managerSvc)
	leaseHandlers := handlers.NewLeaseHandlers(leaseSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc, tenantSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	managerHandlers := handlers.NewManagerHandlers(managerSvc, propertySvc)
	notificationHandlers := handlers.NewNotificationHandlers(asynqClient, tenantRepo)

	// Auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.CognitoJWKSURL, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize auth middleware: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Public listing routes
	e.GET("/properties", propertyHandlers.SearchProperties)
	e.GET("/properties/:id", propertyHandlers.GetProperty)

	// Protected routes
	protected := e.Group("", authMiddleware.Authenticate())

	// Manager-only routes
	managerOnly := protected.Group("", middleware.RequireRole(common.RoleManager))
	managerOnly.POST("/properties", propertyHandlers.CreateProperty)
	managerOnly.PUT("/properties/:id", propertyHandlers.UpdateProperty)
	managerOnly.PUT("/applications/:id/status", applicationHandlers.DecideApplication)
	managerOnly.GET("/leases", leaseHandlers.ListLeases)
	managerOnly.POST("/notifications/email/all", notificationHandlers.EmailAll)
	managerOnly.POST("/notifications/email/user", notificationHandlers.EmailUser)

	// Tenant-only routes
	tenantOnly := protected.Group("", middleware.RequireRole(common.RoleTenant))
	tenantOnly.POST("/applications", applicationHandlers.SubmitApplication)
	tenantOnly.POST("/payments", paymentHandlers.RecordPayment)

	// Routes shared by both roles
	protected.GET("/applications", applicationHandlers.ListApplications)
	protected.GET("/leases/:id", leaseHandlers.GetLease)
	protected.GET("/leases/:id/payments", paymentHandlers.ListPaymentsForLease)
	protected.GET("/properties/:id/leases", leaseHandlers.ListLeasesForProperty)
	protected.GET("/payments/tenant/:cognitoId", paymentHandlers.ListPaymentsForTenant)
	protected.GET("/payments/:id/receipt", paymentHandlers.DownloadReceipt)

	protected.POST("/tenants", tenantHandlers.CreateTenant)
	protected.GET("/tenants/:cognitoId", tenantHandlers.GetTenant)
	protected.PUT("/tenants/:cognitoId", tenantHandlers.UpdateTenant)
	protected.GET("/tenants/:cognitoId/favorites", tenantHandlers.ListFavorites)
	protected.POST("/tenants/:cognitoId/favorites/:propertyId", tenantHandlers.AddFavorite)
	protected.DELETE("/tenants/:cognitoId/favorites/:propertyId", tenantHandlers.RemoveFavorite)
	protected.GET("/tenants/:cognitoId/current-residences", tenantHandlers.ListCurrentResidences)

	protected.POST("/managers", managerHandlers.CreateManager)
	protected.GET("/managers/:cognitoId", managerHandlers.GetManager)
	protected.PUT("/managers/:cognitoId", managerHandlers.UpdateManager)
	protected.GET("/managers/:cognitoId/properties", managerHandlers.ListManagerProperties)

	log.Printf("Rentiva server v%s starting on port %d", version, cfg.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
