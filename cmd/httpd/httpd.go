// Package httpd implements the HTTP server for the pricing scan service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pricescout/cmd/common"
	"github.com/jonesrussell/pricescout/internal/api"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command for managing the HTTP server.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP server that exposes the scan API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	handler := api.NewScanHandler(deps.BuildScanner(), deps.Logger)
	router := api.SetupRouter(deps.Logger, handler)
	server := api.NewServer(deps.Config.Server, router)

	deps.Logger.Info("Starting HTTP server", "addr", deps.Config.Server.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runServerUntilInterrupt(deps, server, errChan)
}

// runServerUntilInterrupt runs the server until interrupted by signal or error.
func runServerUntilInterrupt(deps *common.CommandDeps, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		deps.Logger.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdownServer(deps, server, sig)
	}
}

// shutdownServer performs graceful shutdown of the server.
func shutdownServer(deps *common.CommandDeps, server *http.Server, sig os.Signal) error {
	deps.Logger.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	deps.Logger.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	deps.Logger.Info("Server stopped successfully")
	return nil
}
