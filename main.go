package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexmap/config"
	"lexmap/cron"
	"lexmap/database"
	directoryRepo "lexmap/database/repository/directory"
	"lexmap/handlers"
	"lexmap/middleware"
	"lexmap/routes"
	directorySvc "lexmap/services/directory"
	ai "lexmap/services/intelligence"
	locationSvc "lexmap/services/location"
	"lexmap/services/maps"
	"lexmap/services/notification"
	sessionSvc "lexmap/services/session"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.GeoHintMiddleware())

	// repositories.
	dirRepo := directoryRepo.NewMongoDirectoryRepo()
	if seed, err := directoryRepo.LoadSeedFile(config.AppConfig.DirectorySeedFile); err != nil {
		logger.Warn("main: directory seed file unavailable", zap.Error(err))
	} else if err := dirRepo.SeedIfEmpty(seed.Providers, seed.Institutions); err != nil {
		logger.Warn("main: directory seeding failed", zap.Error(err))
	}

	// services.
	clock := utils.NewRealClock()
	catalog := directorySvc.LoadCatalog(dirRepo)
	catalog.RefreshInstitutionActivity(clock.Now())

	locationService := &locationSvc.DefaultLocationService{
		Store: locationSvc.NewRedisStore(
			utils.GetLocationCacheClient(),
			time.Duration(config.AppConfig.LocationTTLMin)*time.Minute,
		),
		Clock: clock,
	}

	var replySource ai.ReplySource
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		ctxStore := ai.NewRedisContextStore(utils.GetCacheClient(), 30*time.Minute)
		src, err := ai.NewGeminiReplySource(key, ctxStore)
		if err != nil {
			logger.Warn("main: Gemini unavailable, using fixed reply pool", zap.Error(err))
			replySource = ai.NewFixedPoolReplySource(time.Now().UnixNano())
		} else {
			replySource = src
		}
	} else {
		replySource = ai.NewFixedPoolReplySource(time.Now().UnixNano())
	}

	deviceRegistry := notification.NewRedisDeviceRegistry(utils.GetCacheClient())
	notificationService := &notification.DefaultNotificationService{
		Devices: deviceRegistry,
	}
	reminderScheduler := cron.NewReminderScheduler()

	sessionManager := sessionSvc.NewManager(sessionSvc.Config{
		Clock:     clock,
		Directory: catalog,
		Location:  locationService,
		Replies:   replySource,
		Archive:   sessionSvc.NewRedisArchive(utils.GetCacheClient(), 24*time.Hour),
		Reminders: reminderScheduler,
		Seed:      time.Now().UnixNano(),
	})
	sessionManager.Subscribe(notificationService.HandleSessionEvent)

	renderer := maps.NewViewport(catalog)

	presence := directorySvc.NewPresenceSimulator(
		catalog,
		clock,
		time.Duration(config.AppConfig.PresenceIntervalSec)*time.Second,
		time.Now().UnixNano(),
	)
	presence.Start()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	utils.StartHealthMonitor(monitorCtx,
		[]*redis.Client{utils.GetCacheClient(), utils.GetLocationCacheClient()},
		database.MongoClient,
	)

	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		catalog,
		locationService,
		renderer,
		sessionManager,
		deviceRegistry,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	presence.Stop()
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
