package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/internal/infrastructure/config"
	"baggage-service/internal/infrastructure/oauth"
	"baggage-service/internal/infrastructure/persistence"
	"baggage-service/internal/infrastructure/router"
	"baggage-service/internal/interface/ai"
	"baggage-service/internal/interface/httpapi"
	"baggage-service/internal/interface/photo"
	ifaceRepo "baggage-service/internal/interface/repository"
	"baggage-service/internal/usecase"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"
	"baggage-service/templates"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Baggage Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("baggage_service")

	// Set up the record store backend
	var (
		recordRepo  repository.RecordRepository
		mongoClient *mongo.Client
	)
	switch cfg.RecordBackend {
	case "mongo":
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		recordRepo = ifaceRepo.NewMongoRecordRepository(db)
	default:
		recordRepo = ifaceRepo.NewMemoryRecordRepository()
	}

	reportRepo := ifaceRepo.NewMemoryReportRepository()

	// Audit trail: PostgreSQL when configured, in-memory otherwise
	var auditRepo repository.AuditRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		auditRepo = ifaceRepo.NewGormAuditRepository(gormDB, cfg.AuditCap)
	} else {
		auditRepo = ifaceRepo.NewMemoryAuditRepository(cfg.AuditCap)
	}

	// WorldTracer bridge: the simulator stands in when no bridge is
	// deployed at the station.
	var tracerRepo repository.TracerRepository
	if cfg.TracerSimulate {
		log.Info("Using WorldTracer simulator")
		tracerRepo = ifaceRepo.NewTracerSimulator(ifaceRepo.SeedRecords(), 500*time.Millisecond)
	} else {
		var bridgeClient *http.Client
		tracerOAuth := oauth.NewTracerOAuth(cfg.TracerClientID, cfg.TracerClientSecret, cfg.TracerTokenURL, log)
		if tracerOAuth.Configured() {
			bridgeClient = tracerOAuth.HTTPClient(ctx)
		}
		tracerRepo = ifaceRepo.NewTracerClient(ifaceRepo.TracerClientConfig{
			BaseURL:     cfg.TracerBaseURL,
			APIKey:      cfg.TracerAPIKey,
			StationCode: cfg.StationCode,
			AgentID:     cfg.AgentID,
			AirlineCode: cfg.AirlineCode,
			Timeout:     cfg.TracerTimeout,
		}, bridgeClient, log)
	}

	// Set up the reconciliation engine
	policy := usecase.NewSyncPolicy(cfg.SyncPolicy, cfg.SyncRetries, cfg.SyncBackoff, log)
	reconciler := usecase.NewReconciler(
		recordRepo,
		reportRepo,
		tracerRepo,
		auditRepo,
		policy,
		entity.ParseSourceMode(cfg.SourceMode),
		log,
		m,
	)

	resolver := usecase.NewLookupResolver(reconciler, tracerRepo, log, m)
	tickets := usecase.NewTicketService(reconciler, log)

	// Gemini matcher is optional; matching endpoints answer 503 without it
	photoRepo := photo.NewDataURIRepository()
	var matcher repository.MatcherRepository
	if cfg.GeminiAPIKey != "" {
		gm, err := ai.NewGeminiMatcher(cfg.GeminiAPIKey, cfg.GeminiModel, photoRepo, log)
		if err != nil {
			log.Error("Failed to create Gemini matcher", "error", err)
		} else {
			log.Info("Gemini matcher enabled", "model", cfg.GeminiModel)
			matcher = gm
		}
	}

	// Notification pipeline: delivered first, catch-all last
	statusRouter := router.NewStatusRouter(log)
	statusRouter.Register(templates.NewDeliveredNotificationHandler(log))
	statusRouter.Register(templates.NewStatusChangeHandler(log))
	watcher := usecase.NewNotificationWatcher(reconciler, statusRouter, log)
	go watcher.Start(ctx, cfg.NotifyInterval)

	// Start the urgent-record sweep in a goroutine
	sweeper := usecase.NewUrgentSweeper(reconciler, tracerRepo, cfg.SweepInterval, log, m)
	go sweeper.Start(ctx)

	// Set up the HTTP server
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	handler := httpapi.NewHandler(reconciler, resolver, tickets, matcher, auditRepo, log)
	handler.RegisterRoutes(engine)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
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

	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Baggage Service stopped")
}
