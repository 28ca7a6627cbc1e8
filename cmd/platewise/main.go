// Command platewise generates meal plans through the Spoonacular API.
//
// By default it runs as a one-shot CLI: parse flags, generate one plan,
// print the result envelope to stdout as JSON. With MCP_RUN_MODE=server it
// speaks the MCP protocol over stdio instead, and with MCP_RUN_MODE=http it
// serves the same tools over SSE alongside health and metrics endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/platewise/platewise/internal/apiserver"
	"github.com/platewise/platewise/internal/cli"
	"github.com/platewise/platewise/internal/config"
	"github.com/platewise/platewise/internal/logging"
	"github.com/platewise/platewise/internal/mcp"
	"github.com/platewise/platewise/internal/planner"
	"github.com/platewise/platewise/internal/spoonacular"
	"github.com/platewise/platewise/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "platewise: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; deployments usually set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PLATEWISE_CONFIG"))
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	client := spoonacular.NewClient(cfg.Spoonacular.BaseURL, cfg.Spoonacular.APIKey)
	svc := planner.NewService(client, logger)

	switch os.Getenv("MCP_RUN_MODE") {
	case "server":
		return runStdio(svc, logger, cfg)
	case "http":
		return runHTTP(svc, logger, cfg)
	default:
		return cli.Run(context.Background(), svc, os.Args[1:], os.Stdout)
	}
}

// runStdio serves the MCP protocol on stdin/stdout until the client hangs
// up or the process is signalled.
func runStdio(svc *planner.Service, logger *slog.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting platewise MCP server on stdio",
		"version", version.Version,
		"api_key_configured", cfg.HasAPIKey(),
	)

	srv := mcp.NewServer(svc, logger)
	if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// runHTTP serves the MCP SSE transport plus health and metrics endpoints,
// shutting down gracefully on SIGINT or SIGTERM.
func runHTTP(svc *planner.Service, logger *slog.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(svc, logger)
	httpSrv := apiserver.NewServer(cfg, srv.SSEHandler("/mcp"))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting platewise HTTP server",
			"address", httpSrv.Addr,
			"version", version.Version,
			"api_key_configured", cfg.HasAPIKey(),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
