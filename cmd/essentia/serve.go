package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/debeat/essentia"
	httpAdapter "github.com/debeat/essentia/pkg/adapters/http"
	"github.com/debeat/essentia/pkg/adapters/memory"
	redisAdapter "github.com/debeat/essentia/pkg/adapters/redis"
	"github.com/debeat/essentia/pkg/observability"
	"github.com/debeat/essentia/pkg/ports"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pool HTTP server",
	Long:  `Serves stored analysis pools over a JSON API, backed by Redis or an in-process store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("redis-ttl")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		printBanner(essentia.Version)

		var store ports.PoolStore
		if redisAddr != "" {
			store = redisAdapter.New(redisAddr, "", 0, redisAdapter.WithTTL(ttl))
			logger.Info("using redis store", "addr", redisAddr)
		} else {
			store = memory.New()
			logger.Info("using in-memory store")
		}

		metrics := observability.NewMetrics()
		handler := httpAdapter.NewHandler(store,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(metrics.Handler()),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address; empty uses the in-memory store")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration for stored pools (0 keeps them forever)")
}
