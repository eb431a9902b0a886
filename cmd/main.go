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
	"go.uber.org/zap"

	configs "github.com/deelaka-ransilu/bridal-shop-backend/config"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/handler"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/middleware"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/repository"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/router"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/cache"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/database"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/jobs"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/mailer"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/queue"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/redis"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/storage"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// Database
	db, err := database.NewPostgresDB(config)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrated successfully")

	if err := database.Seed(db, config.Seed); err != nil {
		log.Error("Failed to seed database", zap.Error(err))
	}

	// Catalog cache: Redis when enabled and reachable, otherwise in process
	var (
		catalogCache service.CacheStore
		redisPinger  handler.Pinger
	)
	if config.Redis.Enabled {
		redisClient, err := redis.NewClient(config)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			catalogCache = redisClient
			redisPinger = redisClient
		}
	}
	if catalogCache == nil {
		memory := cache.NewCache()
		defer memory.Close()
		catalogCache = memory
	}

	// Object storage
	objectStore, err := storage.NewObjectStore(config.Storage)
	if err != nil {
		log.Fatal("Failed to create object store client", zap.Error(err))
	}
	bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 10*time.Second)
	if err := objectStore.EnsureBucket(bucketCtx); err != nil {
		log.Warn("Object store bucket check failed", zap.Error(err))
	}
	cancelBucket()

	// Email: SMTP in a goroutine, or through the broker when configured
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	smtpSender := mailer.NewSMTPSender(config.Mail)
	asyncMail := service.NewAsyncDispatcher(smtpSender, 30*time.Second)
	var dispatcher service.EmailDispatcher = asyncMail
	if config.Queue.URL != "" {
		publisher := queue.NewPublisher(config.Queue.URL, config.Queue.EmailName)
		defer publisher.Close()
		dispatcher = service.NewQueueDispatcher(publisher, dispatcher)

		consumer := queue.NewConsumer(config.Queue.URL, config.Queue.EmailName, service.NewEmailQueueHandler(smtpSender))
		go consumer.Run(workerCtx)
		log.Info("Email queue enabled", zap.String("queue", config.Queue.EmailName))
	}
	emailService := service.NewEmailService(dispatcher, service.EmailLinks{
		VerificationURL: config.Mail.VerificationURL,
		ResetURL:        config.Mail.ResetURL,
		LoginURL:        config.Mail.LoginURL,
	}, config.Token.EmailVerificationTTL, config.Token.PasswordResetTTL)

	// Repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	verificationRepo := repository.NewEmailVerificationTokenRepository(db)
	resetRepo := repository.NewPasswordResetTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	dressRepo := repository.NewDressRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	stockRepo := repository.NewStockRepository(db)
	imageRepo := repository.NewImageRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	refreshService := service.NewRefreshTokenService(refreshRepo, config.JWT.RefreshDuration)
	googleVerifier := service.NewGoogleVerifier(config.Google)
	defer googleVerifier.Close()
	uploadService := service.NewImageUploadService(objectStore, config.Storage.RootFolder)

	authService := service.NewAuthService(service.AuthDeps{
		Tx:              tx,
		Users:           userRepo,
		Verifications:   verificationRepo,
		Resets:          resetRepo,
		RefreshTokens:   refreshService,
		JWT:             jwtService,
		Google:          googleVerifier,
		Mail:            emailService,
		VerificationTTL: config.Token.EmailVerificationTTL,
		ResetTTL:        config.Token.PasswordResetTTL,
	})
	userService := service.NewUserService(tx, userRepo, employeeRepo, emailService)
	catalogService := service.NewCatalogService(service.CatalogDeps{
		Tx:         tx,
		Categories: categoryRepo,
		Dresses:    dressRepo,
		Variants:   variantRepo,
		Stock:      stockRepo,
		Images:     imageRepo,
		Objects:    uploadService,
		Cache:      catalogCache,
		CacheTTL:   config.Redis.CatalogTTL,
	})
	measurementService := service.NewMeasurementService(tx, userRepo, employeeRepo, orderRepo, measurementRepo)
	maintenanceService := service.NewMaintenanceService(refreshRepo, verificationRepo, resetRepo)

	// Scheduler
	scheduler := jobs.NewScheduler(log, 5*time.Minute)
	if config.Scheduler.Enabled {
		if err := scheduler.Add("purge-expired-tokens", config.Scheduler.CleanupSpec, maintenanceService.PurgeExpiredTokens); err != nil {
			log.Fatal("Invalid token cleanup schedule",
				zap.String("spec", config.Scheduler.CleanupSpec),
				zap.Error(err),
			)
		}
		scheduler.Start()
		log.Info("Scheduler started", zap.String("token_cleanup", config.Scheduler.CleanupSpec))
	}

	// HTTP
	healthHandler := handler.NewHealthHandler(handler.HealthDeps{
		DB:      db,
		Redis:   redisPinger,
		Storage: objectStore,
		Google:  googleVerifier,
	})

	r := router.NewRouter(router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Category:    handler.NewCategoryHandler(catalogService),
		Dress:       handler.NewDressHandler(catalogService),
		Measurement: handler.NewMeasurementHandler(measurementService),
		Upload:      handler.NewUploadHandler(uploadService),
		Health:      healthHandler,
	}, middleware.NewJWTMiddleware(jwtService, userRepo), config).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("base_path", config.App.BasePath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if config.Scheduler.Enabled {
		scheduler.Stop(shutdownCtx)
	}
	stopWorkers()
	if err := asyncMail.Wait(shutdownCtx); err != nil {
		log.Warn("Pending emails not sent before shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
