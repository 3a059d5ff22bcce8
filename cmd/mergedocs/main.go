package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mergedocs/mergedocs/internal/app"
	"github.com/mergedocs/mergedocs/internal/config"
	"github.com/mergedocs/mergedocs/internal/logging"
	"github.com/mergedocs/mergedocs/internal/merge"
	"github.com/mergedocs/mergedocs/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServer(cfg)
		return
	}

	runTUI(cfg)
}

// runTUI starts the interactive menu on the terminal. Document generation
// state lives in a single session seeded from config.
func runTUI(cfg *config.Config) {
	session := merge.NewSession(cfg.Output.Dir)
	if err := session.SetDelimiters(cfg.Merge.DelimiterStart, cfg.Merge.DelimiterEnd); err != nil {
		slog.Error("invalid configured delimiters", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app.NewModel(session))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}

// runServer starts the HTTP API and blocks until SIGINT/SIGTERM.
func runServer(cfg *config.Config) {
	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"output_dir", cfg.Output.Dir,
		"delimiters", cfg.Merge.DelimiterStart+"..."+cfg.Merge.DelimiterEnd,
	)

	server := web.NewServer(cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
