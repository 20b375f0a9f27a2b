package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/crypto"
	"github.com/vaultpass/passforge-go/internal/handler"
	"github.com/vaultpass/passforge-go/internal/repository"
	"github.com/vaultpass/passforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	genService := service.NewGeneratorService(crypto.NewGenerator(crypto.SecureSource{}), store, cfg.Workers)
	genHandler := handler.NewGeneratorHandler(genService, cfg.Defaults)

	var recordHandler *handler.RecordHandler
	if store != nil {
		recordHandler = handler.NewRecordHandler(store)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(ctx, cfg, genHandler, recordHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store, "workers", cfg.Workers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// openStore connects the configured backend. An unreachable backend disables
// persistence instead of stopping the server.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func()) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		return repository.NewMemoryStore(), noop

	case config.StoreMySQL:
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			slog.Warn("database connection failed, persistence disabled", "error", err)
			return nil, noop
		}
		repo := repository.NewPasswordRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			slog.Warn("database schema setup failed, persistence disabled", "error", err)
			db.Close()
			return nil, noop
		}
		return repo, func() { db.Close() }

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis connection failed, persistence disabled", "error", err)
			rdb.Close()
			return nil, noop
		}
		return repository.NewRedisStore(rdb, cfg.RedisPrefix), func() { rdb.Close() }

	default:
		return nil, noop
	}
}
