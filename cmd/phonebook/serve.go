package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/phonebook/pkg/adapters/http"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/aretw0/phonebook/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the phone book over a small JSON API. Each POST /events dispatches exactly one event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetString("port")
		}

		var hooks []domain.LifecycleHooks
		var handlerOpts []httpAdapter.HandlerOption
		if cfg.HTTP.Metrics {
			reg := prometheus.NewRegistry()
			hooks = append(hooks, observability.NewMetrics(reg).Hooks())
			handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(
				promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			))
		}

		a, err := newApp(ctx, cmd, hooks...)
		if err != nil {
			return err
		}
		defer a.Close()

		handlerOpts = append(handlerOpts, httpAdapter.WithLogger(a.logger))
		srv := &http.Server{
			Addr:              ":" + cfg.HTTP.Port,
			Handler:           httpAdapter.NewHandler(a.book, handlerOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		out := cmd.OutOrStdout()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Fprintf(out, "Starting phonebook server on %s (store: %s)\n", srv.Addr, cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Fprintf(out, "\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("killing server: %w", err)
				}
			}
			fmt.Fprintln(out, "Phonebook server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config, 8080)")
}
