package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/wasteworks/wasteworks-api/internal/config"
	"github.com/wasteworks/wasteworks-api/internal/domain/account"
	"github.com/wasteworks/wasteworks-api/internal/domain/auth"
	"github.com/wasteworks/wasteworks-api/internal/domain/compliance"
	"github.com/wasteworks/wasteworks-api/internal/domain/ledger"
	"github.com/wasteworks/wasteworks-api/internal/domain/penalty"
	"github.com/wasteworks/wasteworks-api/internal/domain/report"
	"github.com/wasteworks/wasteworks-api/internal/middleware"
	"github.com/wasteworks/wasteworks-api/internal/pkg/database"
	"github.com/wasteworks/wasteworks-api/internal/pkg/logger"
	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
	"github.com/wasteworks/wasteworks-api/internal/pkg/response"
	"github.com/wasteworks/wasteworks-api/internal/pkg/token"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting WasteWorks API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	tokenService := token.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	m := metrics.New()

	// ---------- Repositories ----------
	accountRepo := account.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	penaltyRepo := penalty.NewRepository(db)
	complianceRepo := compliance.NewRepository(db)
	reportRepo := report.NewPostgresRepository(db)
	authRepo := auth.NewPostgresRepository(db)

	// ---------- Services ----------
	accountService := account.NewService(accountRepo)
	ledgerService := ledger.NewService(ledgerRepo, m)
	penaltyService := penalty.NewService(penaltyRepo, accountService, m, cfg.PenaltyDueDays)
	complianceService := compliance.NewService(complianceRepo, m)
	reportCache := report.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := report.NewService(reportRepo, reportCache)
	authService := auth.NewService(authRepo, tokenService)

	// ---------- Handlers ----------
	accountHandler := account.NewHandler(accountService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	penaltyHandler := penalty.NewHandler(penaltyService)
	complianceHandler := compliance.NewHandler(complianceService)
	reportHandler := report.NewHandler(reportService)
	authHandler := auth.NewHandler(authService)

	authMW := middleware.Auth(tokenService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMW))
		r.Mount("/accounts", accountHandler.Routes(authMW,
			complianceHandler.RegisterRoutes,
			func(r chi.Router) {
				r.Get("/transactions", ledgerHandler.Transactions)
				r.Get("/penalties", penaltyHandler.ListByAccount)
			},
		))
		r.Mount("/ledger", ledgerHandler.Routes(authMW))
		r.Mount("/penalties", penaltyHandler.Routes(authMW))
		r.Mount("/reports", reportHandler.Routes(authMW))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
