// Command hookgated runs the webhook relay daemon: it terminates inbound
// tenant webhooks, verifies their signatures, and forwards them to each
// tenant's configured destination.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/xraph/go-utils/metrics"

	"github.com/xraph/hookgate"
	"github.com/xraph/hookgate/api"
	"github.com/xraph/hookgate/cmd/hookgated/internal/config"
	"github.com/xraph/hookgate/observability"
	"github.com/xraph/hookgate/queue"
	qrabbit "github.com/xraph/hookgate/queue/rabbit"
	qredis "github.com/xraph/hookgate/queue/redis"
	"github.com/xraph/hookgate/vault"
	vmemory "github.com/xraph/hookgate/vault/memory"
	vredis "github.com/xraph/hookgate/vault/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("hookgated exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vlt, err := openVault(cfg.Vault)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}
	defer vlt.Close() //nolint:errcheck // shutting down

	q, err := openQueue(cfg.Queue)
	if err != nil {
		return fmt.Errorf("open queue: %w", err)
	}
	defer q.Close() //nolint:errcheck // shutting down

	gw, err := hookgate.New(
		hookgate.WithVault(vlt),
		hookgate.WithQueue(q),
		hookgate.WithLogger(logger),
		hookgate.WithCacheTTL(cfg.Delivery.CacheTTL),
		hookgate.WithRequestTimeout(cfg.Delivery.RequestTimeout),
		hookgate.WithMaxRetries(cfg.Delivery.MaxRetries),
		hookgate.WithBackoffBase(cfg.Delivery.BackoffBase),
		hookgate.WithRateLimit(cfg.Delivery.RateLimit),
		hookgate.WithMetrics(observability.NewMetrics(metrics.NewMetricsCollector("hookgated"))),
		hookgate.WithTracer(observability.NewTracer()),
	)
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           api.NewHandler(gw, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hookgated listening",
			"addr", cfg.Server.Listen,
			"vault_backend", cfg.Vault.Backend,
			"queue_backend", cfg.Queue.Backend,
			"queue_name", cfg.Queue.Name,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func openVault(cfg config.VaultConfig) (vault.Client, error) {
	switch cfg.Backend {
	case "redis":
		return vredis.New(goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})), nil
	case "static":
		return vmemory.NewWithSecrets(cfg.Static), nil
	default:
		return nil, fmt.Errorf("unknown vault backend %q", cfg.Backend)
	}
}

func openQueue(cfg config.QueueConfig) (queue.Queue, error) {
	switch cfg.Backend {
	case "redis":
		return qredis.New(goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Name), nil
	case "rabbitmq":
		return qrabbit.Dial(cfg.Rabbit.URI, cfg.Name)
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}
