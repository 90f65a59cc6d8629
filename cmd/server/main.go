package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accessapp "github.com/bizdesk/backend/internal/application/access"
	auditapp "github.com/bizdesk/backend/internal/application/audit"
	businessapp "github.com/bizdesk/backend/internal/application/business"
	identityapp "github.com/bizdesk/backend/internal/application/identity"
	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/bizdesk/backend/internal/infrastructure/config"
	"github.com/bizdesk/backend/internal/infrastructure/logger"
	"github.com/bizdesk/backend/internal/infrastructure/persistence"
	"github.com/bizdesk/backend/internal/interfaces/http/handler"
	"github.com/bizdesk/backend/internal/interfaces/http/middleware"
	"github.com/bizdesk/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := gormlogger.Silent
	if cfg.App.Env != "production" {
		gormLogLevel = gormlogger.Warn
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis; fall back to the in-process store
	// when Redis is unreachable so logout still works on a single node
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	templateRepo := persistence.NewGormWorkflowTemplateRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)
	versionRepo := persistence.NewGormDataVersionRepository(db.DB)

	// Access control core
	partnerAccessResolver := accessapp.NewPartnerAccessResolver(partnerRepo, log)
	policies := access.DefaultPolicies()
	facade := mutation.NewFacade(partnerAccessResolver, policies, auditLogRepo, versionRepo, log)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, facade)
	partnerService := accessapp.NewPartnerService(partnerRepo, partnerAccessResolver, facade)
	businessService := businessapp.NewBusinessService(businessRepo, facade)
	customerService := businessapp.NewCustomerService(customerRepo, facade)
	paymentService := businessapp.NewPaymentService(paymentRepo, customerRepo, facade)
	templateService := businessapp.NewWorkflowTemplateService(templateRepo, facade)
	budgetService := businessapp.NewBudgetService(budgetRepo, facade)
	auditQueryService := auditapp.NewQueryService(auditLogRepo, versionRepo, facade)

	principalResolver := accessapp.NewPrincipalResolver(jwtService, blacklist, userRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	businessHandler := handler.NewBusinessHandler(businessService)
	customerHandler := handler.NewCustomerHandler(customerService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	templateHandler := handler.NewWorkflowTemplateHandler(templateService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	auditHandler := handler.NewAuditHandler(auditQueryService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning, unauthenticated)
	engine.GET("/health", systemHandler.Health)

	// Login is the only unauthenticated API route
	engine.POST("/api/v1/auth/login", authHandler.Login)

	// Every other API route requires a resolved principal, and every
	// mutating route records request metadata for the audit trail
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Auth(principalResolver), middleware.RequestMetadata())

	// Identity domain (sessions, users)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)

	// Partner access management
	partnerRoutes := router.NewDomainGroup("partners", "/partners")
	partnerRoutes.POST("", partnerHandler.Create)
	partnerRoutes.POST("/:id/assignments", partnerHandler.AssignBusiness)
	partnerRoutes.POST("/:id/grants", partnerHandler.GrantContent)
	partnerRoutes.GET("/:id/access", partnerHandler.Access)

	// Business domain
	businessRoutes := router.NewDomainGroup("businesses", "/businesses")
	businessRoutes.POST("", businessHandler.Create)
	businessRoutes.GET("", businessHandler.List)
	businessRoutes.GET("/:id", businessHandler.Get)

	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.Get)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)

	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", paymentHandler.Create)
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/:id", paymentHandler.Get)
	paymentRoutes.POST("/:id/pay", paymentHandler.MarkPaid)
	paymentRoutes.POST("/:id/refund", paymentHandler.Refund)
	paymentRoutes.DELETE("/:id", paymentHandler.Delete)

	templateRoutes := router.NewDomainGroup("workflow-templates", "/workflow-templates")
	templateRoutes.POST("", templateHandler.Create)
	templateRoutes.GET("", templateHandler.List)
	templateRoutes.GET("/:id", templateHandler.Get)
	templateRoutes.PUT("/:id", templateHandler.Update)
	templateRoutes.DELETE("/:id", templateHandler.Delete)

	budgetRoutes := router.NewDomainGroup("budgets", "/budgets")
	budgetRoutes.POST("", budgetHandler.Create)
	budgetRoutes.GET("", budgetHandler.List)
	budgetRoutes.GET("/:id", budgetHandler.Get)
	budgetRoutes.PUT("/:id", budgetHandler.Update)
	budgetRoutes.DELETE("/:id", budgetHandler.Delete)

	// Audit and version history
	auditRoutes := router.NewDomainGroup("audit", "/audit")
	auditRoutes.GET("/logs/users/:id", auditHandler.LogsByUser)
	auditRoutes.GET("/logs/:entity/:id", auditHandler.LogsByEntity)
	auditRoutes.GET("/versions/:entity/:id", auditHandler.Versions)
	auditRoutes.GET("/versions/:entity/:id/as-of", auditHandler.AsOf)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(partnerRoutes).
		Register(businessRoutes).
		Register(customerRoutes).
		Register(paymentRoutes).
		Register(templateRoutes).
		Register(budgetRoutes).
		Register(auditRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
