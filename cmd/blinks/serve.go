package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/blinks"
	"github.com/aretw0/blinks/internal/presentation/tui"
	httpAdapter "github.com/aretw0/blinks/pkg/adapters/http"
	"github.com/aretw0/blinks/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/blinks/pkg/adapters/redis"
	"github.com/aretw0/blinks/pkg/config"
	"github.com/aretw0/blinks/pkg/observability"
	"github.com/aretw0/blinks/pkg/ports"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long:  `Exposes every registered action as a JSON endpoint, with an OpenAPI document, Prometheus metrics and a journal of recent invocations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		journal, closeJournal := openJournal(cmd.Context(), cfg, logger)
		defer closeJournal()

		client, err := blinks.New(cfg,
			blinks.WithLogger(logger),
			blinks.WithLifecycleHooks(observability.LogHooks(logger)),
			blinks.WithLifecycleHooks(metrics.Hooks()),
			blinks.WithLifecycleHooks(observability.JournalHooks(journal, logger)),
		)
		if err != nil {
			return err
		}

		handler, err := httpAdapter.NewServer(client.Invoker(), client.Registry(),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(reg),
			httpAdapter.WithJournal(journal),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if term.IsTerminal(int(os.Stderr.Fd())) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(blinks.Version))
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Blinks Server", "addr", srv.Addr, "actions", len(client.Actions()))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "error", err)
				}
			}
			logger.Info("Blinks Server stopped gracefully")
			return nil
		}
	},
}

// openJournal picks the Redis journal when an address is configured and the
// in-memory ring otherwise. An unreachable Redis is reported but still used;
// its errors surface per record.
func openJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Journal, func()) {
	if cfg.Journal.RedisAddr == "" {
		return memory.NewJournal(cfg.Journal.MaxEntries), func() {}
	}

	j := redisAdapter.New(cfg.Journal.RedisAddr, cfg.Journal.RedisPassword, cfg.Journal.RedisDB,
		redisAdapter.WithTTL(cfg.Journal.TTL),
		redisAdapter.WithMaxEntries(cfg.Journal.MaxEntries),
	)
	if err := j.Ping(ctx); err != nil {
		logger.Warn("Redis journal unreachable", "addr", cfg.Journal.RedisAddr, "error", err)
	}
	return j, func() {
		if err := j.Close(); err != nil {
			logger.Warn("Closing Redis journal failed", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides http.addr)")
}
