package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/vendsim/internal/adapters/http"
	"github.com/aretw0/vendsim/internal/config"
	"github.com/aretw0/vendsim/internal/logging"
	"github.com/aretw0/vendsim/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/vendsim/pkg/adapters/redis"
	"github.com/aretw0/vendsim/pkg/observability"
	"github.com/aretw0/vendsim/pkg/ports"
	"github.com/aretw0/vendsim/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the JSON API and the embedded web UI, with sessions held in memory or Redis.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		addr, _ := cmd.Flags().GetString("addr")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg := config.Default()
		if configPath != "" {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}
		if redisURL, _ := cmd.Flags().GetString("redis-url"); redisURL != "" {
			cfg.Store.Backend = "redis"
			cfg.Store.Address = redisURL
		}
		if debug {
			cfg.LogLevel = "debug"
		}

		logger := logging.New(parseLevel(cfg.LogLevel))

		store, closeStore := buildStore(cfg.Store, logger)
		defer closeStore()

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		sessions := session.NewManager(store, session.WithLogger(logger))
		handler := httpAdapter.NewHandler(sessions,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithLifecycleHooks(metrics.Hooks()),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			logger.Info("server stopped gracefully")
		}
	},
}

func buildStore(cfg config.StoreConfig, logger *slog.Logger) (ports.SessionStore, func()) {
	switch cfg.Backend {
	case "redis":
		opts := []redisAdapter.Option{}
		if cfg.TTL != 0 {
			opts = append(opts, redisAdapter.WithTTL(time.Duration(cfg.TTL)))
		}
		if cfg.Prefix != "" {
			opts = append(opts, redisAdapter.WithPrefix(cfg.Prefix))
		}
		store := redisAdapter.New(cfg.Address, cfg.Password, cfg.DB, opts...)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing redis store", "error", err)
			}
		}
	default:
		return memory.NewStore(), func() {}
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("config", "c", "", "Path to a vendsim.yaml config file")
	serveCmd.Flags().String("redis-url", "", "Redis address for session storage (overrides the configured store)")
}
