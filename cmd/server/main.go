package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopfront/backend/internal/application/catalog"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	marketingapp "github.com/shopfront/backend/internal/application/marketing"
	partnerapp "github.com/shopfront/backend/internal/application/partner"
	tradeapp "github.com/shopfront/backend/internal/application/trade"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/persistence"
	"github.com/shopfront/backend/internal/infrastructure/storage"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
	"github.com/shopfront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/shopfront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Shopfront API
//	@version		1.0
//	@description	Storefront backend: catalog, orders, supplier bills and marketing content.

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Logs go to the collector as well once the provider is up, so the
	// logger is rebuilt with the bridge core.
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Warn("OpenTelemetry logs disabled", zap.Error(err))
	} else if logsProvider.IsEnabled() {
		bridged, err := logger.New(logCfg, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Provider:    logsProvider.Provider(),
			Level:       zapcore.InfoLevel,
		}))
		if err == nil {
			log = bridged
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting shopfront API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", zap.Error(err))
	} else if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.GormConfig{
		Level:         cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		LogParams:     cfg.Telemetry.DBLogFullSQL,
	})
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("shopfront.business"))
	if err != nil {
		log.Warn("Business metrics disabled", zap.Error(err))
	}

	// Uploaded files
	var (
		fileStorage catalogapp.FileStorage
		memoryFiles *storage.MemoryFileStorage
	)
	switch cfg.Storage.Driver {
	case "s3":
		s3Files, err := storage.NewS3FileStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		if err := s3Files.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare S3 bucket", zap.Error(err), zap.String("bucket", s3Files.GetBucket()))
		}
		fileStorage = s3Files
	default:
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.App.Port + "/media"
		}
		memoryFiles = storage.NewMemoryFileStorage(baseURL)
		fileStorage = memoryFiles
		log.Warn("Using in-memory file storage, uploads are lost on restart")
	}

	// Access-token revocation
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr()))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	billRepo := persistence.NewGormBuyingBillRepository(db.DB)
	ledger := persistence.NewGormLedgerReader(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Services
	authService := identityapp.NewAuthService(
		persistence.NewGormUserRepository(db.DB),
		persistence.NewGormTokenRepository(db.DB),
		auth.NewJWTService(cfg.JWT),
		blacklist,
		log,
	)
	authService.SetBusinessMetrics(businessMetrics)

	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, ledger, fileStorage, log)
	clientService := partnerapp.NewClientService(clientRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)

	orderService := tradeapp.NewOrderService(orderRepo, productRepo, txScope, log)
	orderService.SetBusinessMetrics(businessMetrics)
	billService := tradeapp.NewBillService(billRepo, productRepo, supplierService, txScope, log)
	billService.SetBusinessMetrics(businessMetrics)

	newsletterService := marketingapp.NewNewsletterService(persistence.NewGormSubscriptionRepository(db.DB), log)
	contactService := marketingapp.NewContactService(persistence.NewGormContactRepository(db.DB), log)
	bannerService := marketingapp.NewBannerService(persistence.NewGormBannerRepository(db.DB), fileStorage, log)

	if cfg.App.AdminUsername != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
			log.Fatal("Failed to create admin account", zap.Error(err))
		}
	}
	if purged, err := authService.PurgeExpiredTokens(ctx); err != nil {
		log.Warn("Failed to purge expired refresh tokens", zap.Error(err))
	} else if purged > 0 {
		log.Info("Purged expired refresh tokens", zap.Int64("count", purged))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request id, panics, access log, tracing, metrics,
	// profiling labels, security headers, CORS, body limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
		Logger:        log,
	}))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:          profiler != nil && profiler.IsEnabled(),
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger", "/media"},
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// Multipart uploads are capped separately by the upload handlers.
	engine.Use(middleware.BodyLimit(max(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize)))

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		go authLimiter.Run(ctx)
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	engine.GET("/health", handler.NewHealthHandler(db).Health)
	if memoryFiles != nil {
		engine.GET("/media/*key", handler.NewMediaHandler(memoryFiles).Serve)
	}

	swaggerAuth := []gin.HandlerFunc{middleware.RequireAuth(authService, log), middleware.RequireAdmin()}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth...),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterShop(r, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Category:   handler.NewCategoryHandler(categoryService),
		Product:    handler.NewProductHandler(productService, cfg.HTTP.MaxUploadSize),
		Client:     handler.NewClientHandler(clientService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Order:      handler.NewOrderHandler(orderService),
		Bill:       handler.NewBillHandler(billService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		Contact:    handler.NewContactHandler(contactService),
		Banner:     handler.NewBannerHandler(bannerService),
	}, router.Guards{
		Authenticator: authService,
		AuthLimiter:   authLimiter,
		Logger:        log,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Failed to stop profiler", zap.Error(err))
		}
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down tracer provider", zap.Error(err))
	}
	if logsProvider != nil {
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down logger provider", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
