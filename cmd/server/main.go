package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkin-service/internal/infrastructure/config"
	"checkin-service/internal/infrastructure/oauth"
	"checkin-service/internal/infrastructure/persistence"
	"checkin-service/internal/interface/api"
	"checkin-service/internal/interface/repository"
	"checkin-service/internal/usecase"
	"checkin-service/internal/worker"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	var log logger.Logger
	if cfg.LogsDirectory != "" {
		log = logger.NewFileLogger(cfg.LogsDirectory)
	} else {
		log = logger.NewLogger()
	}
	log.Info("Starting Checkin Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Metrics
	appMetrics := metrics.NewMetrics("checkin_service")

	// Set up repositories
	flightRepo := repository.NewGormFlightRepository(gormDB)
	journalRepo := repository.NewMongoJournalRepository(db)

	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, log)
	detailRepo := repository.NewAmadeusFlightDetailRepository(cfg.AmadeusBaseURL, cfg.CarrierCode, amadeusOAuth.Client(ctx), log)
	schedulerRepo := repository.NewFridaySchedulerRepository(cfg.FridayServerURL, cfg.FridayServerSecret, log)

	assistantRepo := repository.NewOpenAIAssistantRepository(cfg.OpenAIAPIKey, log)
	notePublisher := repository.NewNoteWebhookRepository(cfg.NoteWebhookURL, log)

	// Set up usecases
	lifecycle := usecase.NewCheckinLifecycle(flightRepo, detailRepo, schedulerRepo, cfg.ClientBaseURL, appMetrics, log)
	journal := usecase.NewJournalProcessor(journalRepo, assistantRepo, assistantRepo, notePublisher, appMetrics, log)

	// Start maintenance workers
	orchestrator := worker.NewOrchestrator([]worker.Worker{
		worker.NewPurgeWorker(flightRepo, cfg.PurgeRetention, cfg.PurgeSchedule, log),
	}, log)
	cronRunner, err := orchestrator.Start(ctx)
	if err != nil {
		log.Fatal("Failed to start maintenance workers", "error", err)
	}
	defer cronRunner.Stop()

	// Set up HTTP server
	apiServer := api.NewServer(lifecycle, journal, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Checkin Service stopped")
}
