package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/api"
	"github.com/stockpulse/backend/internal/api/handlers"
)

// apiCmd starts the HTTP API server.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                   - Health check
  GET  /api/securities           - Enriched securities
  GET  /api/securities/{ticker}  - One enriched security
  GET  /api/dashboard            - Raw dashboard payload
  GET  /api/dashboard/formatted  - Display-formatted dashboard
  POST /api/data/collect         - Trigger fundamentals refresh
  POST /api/data/sentiment       - Store a sentiment document

Example:
  go run ./cmd/pulse api
  go run ./cmd/pulse api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.logger
	log.Info("Connected to database")

	securityHandler := handlers.NewSecurityHandler(a.fundamentalsRepo, a.sentimentRepo, a.assembler, log)
	dashboardHandler := handlers.NewDashboardHandler(a.fundamentalsRepo, a.sentimentRepo, a.assembler, log)
	dataHandler := handlers.NewDataHandler(a.collector, a.sentimentRepo, a.cfg.Market.Universe, log)

	router := api.NewRouter(securityHandler, dashboardHandler, dataHandler, log)
	server := api.New(a.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
