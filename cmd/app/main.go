package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"asistencia-api/internal/config"
	"asistencia-api/internal/http-server/router"
	"asistencia-api/internal/lock"
	"asistencia-api/internal/metrics"
	svc "asistencia-api/internal/service"
	"asistencia-api/internal/storage/executor"
	"asistencia-api/internal/storage/pool"
	"asistencia-api/internal/storage/sqlstore"
	slogpretty "asistencia-api/pkg/handlers/slogPretty"
	"asistencia-api/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	// A failed pool does not stop the process; database routes answer 503.
	dbPool := pool.New(context.Background(), pool.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}, log)

	locker := setupLocker(log, cfg.RedisAddr)

	storage := sqlstore.New(executor.New(dbPool, cfg.Database.QueryTimeout))

	service := svc.NewService(storage, locker)

	m := metrics.New()
	if db := dbPool.DB(); db != nil {
		m.RegisterDB(db.DB, cfg.Database.Name)
	}

	handler := router.New(router.Deps{
		Log:           log,
		Service:       service,
		Pinger:        dbPool,
		Metrics:       m,
		AllowedOrigin: cfg.CORS.AllowedOrigin,
	})

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := dbPool.Close(); err != nil {
		log.Error("Failed to close database pool", sl.Err(err))
	} else {
		log.Info("Database pool closed")
	}

	if err := locker.Close(); err != nil {
		log.Error("Failed to close locker", sl.Err(err))
	} else {
		log.Info("Locker closed")
	}

	log.Info("Shutdown finished, server stopped")

}

// setupLocker prefers Redis so create locks hold across replicas, and falls
// back to an in-process lock when Redis is not configured or unreachable.
func setupLocker(log *slog.Logger, redisAddr string) lock.Locker {
	if redisAddr == "" {
		log.Info("REDIS_ADDR not set, using in-process create locks")
		return lock.NewLocalLock()
	}

	locker, err := lock.NewRedisLock(redisAddr)
	if err != nil {
		log.Warn("Failed to init redis lock, using in-process create locks",
			slog.String("addr", redisAddr), sl.Err(err))
		return lock.NewLocalLock()
	}

	log.Info("Redis create locks enabled", slog.String("addr", redisAddr))

	return locker
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
