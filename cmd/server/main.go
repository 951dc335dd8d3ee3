package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"hamdukhub/internal/access"
	"hamdukhub/internal/api"
	"hamdukhub/internal/api/handlers"
	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/notify"
	"hamdukhub/internal/pkg/logger"
	"hamdukhub/internal/platform/auth"
	"hamdukhub/internal/platform/config"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/repositories"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	dbWrapper := database.NewWrapper(db)

	// Repositories
	userRepo := repositories.NewAPIUserRepository(db)
	logRepo := repositories.NewUsageLogRepository(db)
	windowRepo := repositories.NewRateWindowRepository(db)

	// Access-control core
	validator := access.NewKeyValidator(userRepo)
	recorder := access.NewRecorder(logRepo, cfg.Usage.RecorderBuffer)
	defer recorder.Close()

	// Services
	tokenSvc := auth.NewTokenService(cfg.Portal)
	dispatcher := notify.NewDispatcher(cfg.Notify)

	// Handlers
	contentHandler := handlers.NewContentHandler(dbWrapper)
	courseHandler := handlers.NewCourseHandler(dbWrapper)
	productHandler := handlers.NewProductHandler(dbWrapper)
	quoteHandler := handlers.NewQuoteHandler(dbWrapper, dispatcher)
	bookingHandler := handlers.NewBookingHandler(dbWrapper)
	assistantHandler := handlers.NewAssistantHandler()
	applicationHandler := handlers.NewApplicationHandler(dbWrapper, dispatcher)
	newsletterHandler := handlers.NewNewsletterHandler(dbWrapper)
	portalHandler := handlers.NewPortalHandler(dbWrapper)
	healthHandler := handlers.NewHealthHandler(dbWrapper)
	metricsHandler := handlers.NewMetricsHandler(dbWrapper, recorder)

	// Middleware
	keyAuth := middleware.NewKeyAuth(validator, recorder)
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)
	submissionLimiter := middleware.NewSubmissionLimiter(windowRepo, cfg.RateLimit)

	// Router
	deps := &api.Dependencies{
		ContentHandler:     contentHandler,
		CourseHandler:      courseHandler,
		ProductHandler:     productHandler,
		QuoteHandler:       quoteHandler,
		BookingHandler:     bookingHandler,
		AssistantHandler:   assistantHandler,
		ApplicationHandler: applicationHandler,
		NewsletterHandler:  newsletterHandler,
		PortalHandler:      portalHandler,
		HealthHandler:      healthHandler,
		MetricsHandler:     metricsHandler,
		KeyAuth:            keyAuth,
		AuthMiddleware:     authMiddleware,
		SubmissionLimiter:  submissionLimiter,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
