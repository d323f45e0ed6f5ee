package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/tracetm/internal/cli"
	httpAdapter "github.com/aretw0/tracetm/pkg/adapters/http"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <machine>",
	Short: "Start the HTTP API",
	Long:  `Loads one machine and exposes tracing, its definition, its graph, stored reports and Prometheus metrics over HTTP.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Store.Kind == "" {
			// The API lists reports, so keep them in memory unless told otherwise.
			cfg.Store.Kind = "memory"
		}

		logger, closeLog, err := cli.CreateLogger(cfg.Debug, cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		hooks := metrics.Hooks().Merge(observability.LogHooks(logger))

		m, closeStore, err := cli.LoadMachine(sigCtx, args[0], cfg, logger, hooks)
		if err != nil {
			return err
		}
		defer closeStore()

		handler, err := httpAdapter.NewHandler(m,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(prometheus.DefaultGatherer),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting tracetm server on %s\n", srv.Addr)
			fmt.Printf("Serving machine: %s\n", m.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			fmt.Printf("\nStart shutdown... Signal: %v\n", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("tracetm server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
