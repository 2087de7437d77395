package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhigdrv/tenantpro/internal/config"
	"github.com/abhigdrv/tenantpro/internal/handlers"
	"github.com/abhigdrv/tenantpro/internal/jobs"
	"github.com/abhigdrv/tenantpro/internal/middleware"
	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/services"
	"github.com/abhigdrv/tenantpro/internal/session"
	"github.com/abhigdrv/tenantpro/internal/storage"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting TenantPro")

	db, err := connectDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	if err := runMigrations(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	sessions := connectSessionStore(cfg, logger)

	store, err := storage.NewLocalStore(cfg.Storage.BasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize document storage")
	}

	// Repositories
	propertyRepo := repository.NewPropertyRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, sessions, logger)
	leaseService := services.NewLeaseService(leaseRepo, store, cfg.Storage.MaxFileSize, logger)
	reportService := services.NewReportService(reportRepo, paymentRepo, maintenanceRepo, logger)

	// Background room status reconciliation
	reconciler := jobs.NewRoomReconciler(
		propertyRepo,
		time.Duration(cfg.Jobs.ReconcileInterval)*time.Second,
		logger,
	)
	reconciler.Start()

	router := setupRouter(cfg, sessions, logger, routerDeps{
		auth:        handlers.NewAuthHandler(authService, cfg.Session, logger),
		properties:  handlers.NewPropertyHandler(propertyRepo, logger),
		tenants:     handlers.NewTenantHandler(tenantRepo, logger),
		leases:      handlers.NewLeaseHandler(leaseService, leaseRepo, tenantRepo, propertyRepo, logger),
		payments:    handlers.NewPaymentHandler(paymentRepo, leaseRepo, logger),
		maintenance: handlers.NewMaintenanceHandler(maintenanceRepo, tenantRepo, propertyRepo, logger),
		contacts:    handlers.NewContactHandler(contactRepo, logger),
		reports:     handlers.NewReportHandler(reportService, logger),
		health:      handlers.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:         cfg.GetAddr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.GetAddr()).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

// setupLogger configures the application logger
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	switch cfg.Logging.Level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: cfg.Logging.TimeFormat,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: cfg.Logging.TimeFormat,
		})
	}

	logger.SetOutput(os.Stdout)
	return logger
}

// connectDatabase establishes the database connection
func connectDatabase(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	if cfg.IsDevelopment() {
		gormLogger = gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	}

	// TranslateError lets repositories match gorm.ErrDuplicatedKey across
	// drivers
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully")
	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB, logger *logrus.Logger) error {
	logger.Info("Running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Lease{},
		&models.LeaseDocument{},
		&models.Payment{},
		&models.MaintenanceRequest{},
		&models.ContactMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// connectSessionStore connects to redis, falling back to an in-memory store
// when redis is unreachable
func connectSessionStore(cfg *config.Config, logger *logrus.Logger) session.Store {
	store, err := session.NewRedisStore(session.RedisConfig{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Session.RedisPassword,
		DB:       cfg.Session.RedisDB,
		TTL:      time.Duration(cfg.Session.TTL) * time.Second,
	}, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis, using in-memory sessions")
		return session.NewMemoryStore(time.Duration(cfg.Session.TTL) * time.Second)
	}

	logger.Info("Connected to Redis session store")
	return store
}

type routerDeps struct {
	auth        *handlers.AuthHandler
	properties  *handlers.PropertyHandler
	tenants     *handlers.TenantHandler
	leases      *handlers.LeaseHandler
	payments    *handlers.PaymentHandler
	maintenance *handlers.MaintenanceHandler
	contacts    *handlers.ContactHandler
	reports     *handlers.ReportHandler
	health      *handlers.HealthHandler
}

// setupRouter configures the HTTP router
func setupRouter(cfg *config.Config, sessions session.Store, logger *logrus.Logger, deps routerDeps) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	if cfg.Security.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowCredentials = true
		if len(cfg.Security.AllowedOrigins) == 1 && cfg.Security.AllowedOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowCredentials = false
		} else {
			corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
		}
		router.Use(cors.New(corsConfig))
	}

	// Public routes
	router.GET("/", deps.auth.Root)
	router.GET("/login", deps.auth.LoginPage)
	router.POST("/login", deps.auth.Login)
	router.GET("/register", deps.auth.RegisterPage)
	router.POST("/register", deps.auth.Register)
	router.GET("/logout", deps.auth.Logout)
	router.POST("/contact", deps.contacts.Submit)

	router.GET("/health", deps.health.Health)
	router.GET("/ready", deps.health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Agent routes behind session auth
	authenticator := middleware.NewSessionAuthenticator(sessions, cfg.Session.CookieName, logger)
	agent := router.Group("/agent")
	agent.Use(middleware.RequireAuth(authenticator))
	{
		agent.GET("/dashboard", deps.reports.Dashboard)

		properties := agent.Group("/properties")
		{
			properties.GET("", deps.properties.List)
			properties.GET("/new", deps.properties.New)
			properties.POST("", deps.properties.Create)
			properties.GET("/:id", deps.properties.View)
			properties.GET("/:id/edit", deps.properties.Edit)
			properties.POST("/:id/edit", deps.properties.Update)
			properties.POST("/:id/delete", deps.properties.Delete)

			properties.GET("/:id/rooms/new", deps.properties.NewRoom)
			properties.POST("/:id/rooms", deps.properties.CreateRoom)
			properties.GET("/:id/rooms/:roomId/edit", deps.properties.EditRoom)
			properties.POST("/:id/rooms/:roomId/edit", deps.properties.UpdateRoom)
			properties.POST("/:id/rooms/:roomId/delete", deps.properties.DeleteRoom)
		}

		tenants := agent.Group("/tenants")
		{
			tenants.GET("", deps.tenants.List)
			tenants.GET("/new", deps.tenants.New)
			tenants.POST("", deps.tenants.Create)
			tenants.GET("/:id", deps.tenants.View)
			tenants.GET("/:id/edit", deps.tenants.Edit)
			tenants.POST("/:id/edit", deps.tenants.Update)
			tenants.POST("/:id/delete", deps.tenants.Delete)
		}

		leases := agent.Group("/leases")
		{
			leases.GET("", deps.leases.List)
			leases.GET("/new", deps.leases.New)
			leases.POST("", deps.leases.Create)
			leases.GET("/:id", deps.leases.View)
			leases.GET("/:id/edit", deps.leases.Edit)
			leases.POST("/:id/edit", deps.leases.Update)
			leases.POST("/:id/delete", deps.leases.Delete)

			leases.GET("/:id/documents/:docId/download", deps.leases.DownloadDocument)
			leases.POST("/:id/documents/:docId/delete", deps.leases.DeleteDocument)
		}

		payments := agent.Group("/payments")
		{
			payments.GET("", deps.payments.List)
			payments.GET("/new", deps.payments.New)
			payments.POST("", deps.payments.Create)
			payments.GET("/:id", deps.payments.View)
			payments.GET("/:id/edit", deps.payments.Edit)
			payments.POST("/:id/edit", deps.payments.Update)
			payments.POST("/:id/delete", deps.payments.Delete)
		}

		maintenance := agent.Group("/maintenance")
		{
			maintenance.GET("", deps.maintenance.List)
			maintenance.GET("/new", deps.maintenance.New)
			maintenance.POST("", deps.maintenance.Create)
			maintenance.GET("/:id", deps.maintenance.View)
			maintenance.GET("/:id/edit", deps.maintenance.Edit)
			maintenance.POST("/:id/edit", deps.maintenance.Update)
			maintenance.POST("/:id/delete", deps.maintenance.Delete)
		}

		contacts := agent.Group("/contacts")
		{
			contacts.GET("", deps.contacts.List)
			contacts.GET("/:id", deps.contacts.Detail)
			contacts.POST("/:id/mark-read", deps.contacts.MarkRead)
			contacts.POST("/:id/mark-responded", deps.contacts.MarkResponded)
			contacts.POST("/:id/delete", deps.contacts.Delete)
		}

		reports := agent.Group("/reports")
		{
			reports.GET("/revenue", deps.reports.Revenue)
			reports.GET("/payments", deps.reports.Payments)
			reports.GET("/outstanding", deps.reports.Outstanding)
			reports.GET("/occupancy", deps.reports.Occupancy)
			reports.GET("/vacancy", deps.reports.Vacancy)
			reports.GET("/tenants", deps.reports.Tenants)
			reports.GET("/lease-expiry", deps.reports.LeaseExpiry)
			reports.GET("/properties", deps.reports.Properties)
			reports.GET("/maintenance", deps.reports.Maintenance)

			reports.GET("/export/revenue", deps.reports.ExportRevenue)
			reports.GET("/export/payments", deps.reports.ExportPayments)
			reports.GET("/export/tenants", deps.reports.ExportTenants)
		}
	}

	return router
}
