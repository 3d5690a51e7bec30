// Package main is the entry point for the GeoJourney API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/nkarstens/geojourney/internal/assist"
	"github.com/nkarstens/geojourney/internal/config"
	"github.com/nkarstens/geojourney/internal/handler"
	"github.com/nkarstens/geojourney/internal/middleware"
	"github.com/nkarstens/geojourney/internal/repo"
	"github.com/nkarstens/geojourney/internal/service"
	"github.com/nkarstens/geojourney/internal/session"
	"github.com/nkarstens/geojourney/internal/store"
	"github.com/nkarstens/geojourney/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Wait for the DB to come up before accepting traffic. Containerized
	// deployments routinely start the API before Postgres is ready.
	backoff := retry.WithMaxRetries(10, retry.NewConstant(time.Second))
	err = retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Storage, services, collaborators -----------------------------------
	kv := store.NewPostgres(pool)
	trips := repo.NewTrips(kv, logger)
	expenses := repo.NewExpenses(kv, logger)
	budget := repo.NewBudget(kv, logger)

	// AI features are optional. Without an API key the session tracker falls
	// back to an unknown mode and the AI endpoints report as unconfigured.
	detector := assist.ModeDetector(assist.NoDetector{})
	var (
		extractor assist.ExpenseExtractor
		insights  assist.InsightGenerator
		suggester assist.TripSuggester
	)
	if cfg.AIAPIKey != "" {
		gemini := assist.NewGemini(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
		detector = gemini
		extractor = gemini
		insights = gemini
		suggester = gemini
		slog.Info("ai features enabled", "model", cfg.AIModel)
	} else {
		slog.Info("AI_API_KEY not set, ai features disabled")
	}

	fixes := session.NewPushSource()
	tracker := session.NewTracker(fixes, detector, trips, logger)

	tripSvc := service.NewTripService(trips)
	exportSvc := service.NewExportService(trips)
	expenseSvc := service.NewExpenseService(expenses, trips, extractor)
	budgetSvc := service.NewBudgetService(budget, expenseSvc)
	dashboardSvc := service.NewDashboardService(trips, expenses, insights, suggester)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(tripSvc, exportSvc, expenseSvc, budgetSvc, tracker, fixes, dashboardSvc)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // AI-backed endpoints wait on the model
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all embedded migrations through goose. It uses a
// dedicated database/sql connection; the pgx pool stays untouched.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return err
	}
	return nil
}
