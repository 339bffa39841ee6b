// Command server runs the Nemesis HTTP API.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/nemesis-app/nemesis-server/internal/app"
	"github.com/nemesis-app/nemesis-server/internal/app/httpapi"
	"github.com/nemesis-app/nemesis-server/internal/app/metrics"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/postgres"
	"github.com/nemesis-app/nemesis-server/internal/config"
	"github.com/nemesis-app/nemesis-server/internal/insight"
	"github.com/nemesis-app/nemesis-server/internal/middleware"
	"github.com/nemesis-app/nemesis-server/internal/platform/migrations"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

func main() {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("server").WithError(err).Fatal("load configuration")
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).WithField("component", "server")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	stores, closeDB, err := buildStores(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB()

	generator := insight.NewClient(cfg.Insights, log)

	application, err := app.New(stores, app.Options{
		AuthSecret: []byte(cfg.Auth.Secret),
		AuthIssuer: cfg.Auth.Issuer,
		TokenTTL:   cfg.Auth.TokenTTL,
		Generator:  generator,
	}, log)
	if err != nil {
		return err
	}
	if err := application.Start(context.Background()); err != nil {
		return err
	}
	defer application.Stop(context.Background())

	handler := httpapi.NewHandler(application, httpapi.Options{
		AuditLogPath: cfg.Server.AuditLogPath,
	}, log)

	authMW := middleware.NewAuthMiddleware(application.Auth, log, []string{
		"/api/auth/register",
		"/api/auth/login",
		"/healthz",
		"/metrics",
	})
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
	limiter.StartCleanup(middleware.CleanupInterval)
	cors := middleware.NewCORSMiddleware(cfg.Server.AllowedOrigins)
	logging := middleware.NewLoggingMiddleware(log)

	// Outermost first: CORS answers preflights before anything else runs,
	// auth resolves the user so the limiter can key on it.
	var root http.Handler = handler
	root = limiter.Handler(root)
	root = authMW.Handler(root)
	root = logging.Handler(root)
	root = metrics.InstrumentHandler(root)
	root = cors.Handler(root)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildStores opens Postgres when a DSN is configured, otherwise falls back
// to in-memory stores so the server can run without a database.
func buildStores(cfg config.DatabaseConfig, log *logger.Logger) (app.Stores, func(), error) {
	if cfg.DSN == "" {
		log.Warn("no database configured; using in-memory stores")
		return app.Stores{}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return app.Stores{}, nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return app.Stores{}, nil, err
	}
	if err := migrations.Apply(db); err != nil {
		db.Close()
		return app.Stores{}, nil, err
	}
	log.Info("database migrations applied")

	store := postgres.New(db)
	return app.Stores{
		Users:         store,
		Settings:      store,
		Habits:        store,
		Journals:      store,
		Finances:      store,
		Wellness:      store,
		Gratitude:     store,
		Hydration:     store,
		Sleep:         store,
		Subscriptions: store,
		Purger:        store,
	}, func() { db.Close() }, nil
}
