package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/interface/flights"
	"flightwatch-service/internal/interface/httpapi"
	"flightwatch-service/internal/interface/notifier"
	storeRepo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for observation history
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)
	priceRecordRepo := storeRepo.NewMongoPriceRecordRepository(db)

	// Airport reference directory is optional; alerts fall back to bare
	// airport codes without it
	var airportRepo repository.AirportRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepo = storeRepo.NewGormAirportRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, running without airport directory")
	}

	// Set up the tracker registry and collaborators
	trackerStore := storeRepo.NewInMemoryTrackerStore()
	flightClient := flights.NewHTTPFlightSearchClient(cfg.FlightsAPIURL, cfg.FlightsAPIToken, log)
	alertNotifier := notifier.NewWebhookNotifier(cfg.NotifyServiceURL, cfg.NotifyToken, log)

	trackerService := usecase.NewTrackerService(trackerStore, log)
	dispatcher := usecase.NewNotificationDispatcher(alertNotifier, airportRepo, trackerStore, log, cfg.RemoveAfterAlert)

	m := metrics.NewMetrics("flightwatch")
	runner := usecase.NewPollRunner(trackerStore, flightClient, dispatcher, priceRecordRepo, m, log, usecase.PollRunnerConfig{
		CycleInterval:         cfg.CycleInterval,
		MaxSamplesPerCycle:    cfg.MaxSamplesPerCycle,
		InterCallDelay:        cfg.InterCallDelay,
		LookupMinInterval:     cfg.LookupMinInterval,
		MaxConcurrentTrackers: cfg.MaxConcurrentTrackers,
	})

	// Set up HTTP server: tracker command API, metrics, health
	apiHandler := httpapi.NewHandler(trackerService, log)
	router := chi.NewRouter()
	router.Route("/api/v1", apiHandler.Routes)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Readiness gate: the scheduler runs its first cycle only once the
	// host surface is up
	ready := make(chan struct{})

	// Bind the listener before opening the gate, so readiness means the
	// server is actually accepting connections
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatal("Failed to bind HTTP listener", "addr", server.Addr, "error", err)
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()
	close(ready)

	// Start the poll cycle scheduler in a goroutine
	runnerDone := make(chan struct{})
	go func() {
		defer close(runnerDone)
		if err := runner.Start(ctx, ready); err != nil {
			log.Fatal("Poll scheduler failed", "error", err)
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

	cancel() // Stop the scheduler; an in-flight cycle finishes first

	select {
	case <-runnerDone:
	case <-time.After(30 * time.Second):
		log.Warn("Timed out waiting for poll cycle to finish")
	}

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightwatch Service stopped")
}
