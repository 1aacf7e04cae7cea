package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"confdata/config"
	_ "confdata/docs"
	"confdata/internal/adapters/auth"
	"confdata/internal/adapters/database"
	"confdata/internal/adapters/metrics"
	"confdata/internal/adapters/pages"
	httpDelivery "confdata/internal/delivery/http"
	"confdata/internal/delivery/http/controllers"
	"confdata/internal/delivery/http/middleware"
	"confdata/internal/repository/postgres"
	"confdata/internal/services"
)

// @title Conference Data Export API
// @version 1.0
// @description Superuser-only CSV and spreadsheet exports of proposals, speakers, schedule, and sponsors.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT from POST /auth/login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	driver, _ := database.Driver(cfg.DBUrl)
	logger.Info("connected to database", "driver", driver)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHandler(cfg, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

// newHandler wires repositories, services, and controllers into the HTTP handler chain.
func newHandler(cfg *config.Config, db *sql.DB, logger *slog.Logger) http.Handler {
	// Repositories
	proposalRepo := postgres.NewProposalRepository(db)
	reviewRepo := postgres.NewReviewResultRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	// Services
	exportService := services.NewExportService(
		proposalRepo, reviewRepo, speakerRepo, sponsorRepo, scheduleRepo,
		cfg.MediaURL, cfg.SponsorHashTemplate, cfg.RequestTimeout,
	)
	authService := services.NewAuthService(
		userRepo, roleRepo,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
	)

	// Delivery
	exportMetrics := metrics.NewExportMetrics()
	exportController := controllers.NewExportController(logger, exportService, exportMetrics, cfg.SiteDomain)
	dataController := controllers.NewDataController(logger, exportService, pages.NewRenderer(cfg.MediaURL), exportMetrics)
	authController := controllers.NewAuthController(logger, authService)
	admin := middleware.RequireSuperuser(auth.NewJWTVerifier(cfg.JWTSecret), logger)

	router := httpDelivery.NewRouter(exportController, dataController, authController, admin, exportMetrics.Handler())
	return middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router))
}
