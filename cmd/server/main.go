package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftlog/api/internal/api"
	"liftlog/api/internal/cache"
	"liftlog/api/internal/config"
	"liftlog/api/internal/logging"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/repository"
	"liftlog/api/internal/repository/mongo"
	"liftlog/api/internal/service"
	"liftlog/api/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title Lift Log API
// @version 1.0
// @description API for logging strength workouts, plans and personal records.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.Params{
		Level:    cfg.Log.Level,
		JSON:     cfg.Log.JSON,
		FileName: cfg.Log.File,
		Stdout:   cfg.Log.Stdout,
	})
	log.Info("starting lift log server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI, cfg.Database.Timeout)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Infof("connected to database %s", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Info("index creation completed")
	}()

	// --- Metrics ---
	registry := metrics.NewRegistry()
	m := metrics.New("liftlog", "api", registry)

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	contactRepo := mongo.NewMongoContactRepository(appDB)

	var perfRepo repository.PerformanceRepository = mongo.NewMongoPerformanceRepository(appDB)
	if redisClient := cache.ConnectRedis(cfg.Redis); redisClient != nil {
		defer redisClient.Close()
		perfRepo = cache.NewPerformanceRepository(perfRepo, redisClient, cfg.Redis.TTL, m)
		log.Infof("ledger cache enabled at %s", cfg.Redis.Addr)
	}

	// --- Initialize Storage ---
	exportStore, err := storage.NewS3Storage(context.Background(), cfg.S3)
	switch {
	case errors.Is(err, storage.ErrStorageDisabled):
		log.Info("no export bucket configured, exports disabled")
		exportStore = nil
	case err != nil:
		log.Fatalf("failed to initialize S3 storage: %s", err)
	}

	// --- Initialize Services ---
	performanceService := service.NewPerformanceService(perfRepo, m)
	services := api.Services{
		Auth:        service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Profile:     service.NewProfileService(userRepo),
		Plans:       service.NewPlanService(planRepo),
		Sessions:    service.NewSessionService(sessionRepo, workoutRepo, planRepo, perfRepo, performanceService, m),
		Workouts:    service.NewWorkoutService(workoutRepo, performanceService),
		Performance: performanceService,
		Contact:     service.NewContactService(contactRepo),
		Export:      service.NewExportService(userRepo, planRepo, sessionRepo, workoutRepo, perfRepo, exportStore),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	api.SetupRoutes(router, services, api.Options{
		DB:           mongo.NewPinger(dbClient),
		Metrics:      m,
		Gatherer:     registry,
		StoreTimeout: cfg.Database.Timeout,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Info("server exiting")
}
