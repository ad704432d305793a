package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/clipboard"
	"github.com/skulk-project/skulk/internal/health"
	"github.com/skulk-project/skulk/internal/httpserver"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/launcher"
	"github.com/skulk-project/skulk/internal/logger"
	"github.com/skulk-project/skulk/internal/probe"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:     "serve",
	GroupID: GroupSession,
	Short:   "Run the admin HTTP API",
	Long: `Run the admin HTTP API for this session host.

Endpoints:
  GET  /api/health                          Session health
  GET  /api/clipboard                       Read the session clipboard
  POST /api/clipboard                       Write the session clipboard
  GET  /api/accounts                        List accounts
  POST /api/accounts                        Create an account
  GET  /api/accounts/{id}                   Get one account
  PUT  /api/accounts/{id}                   Update an account
  DELETE /api/accounts/{id}                 Delete an account
  POST /api/accounts/{id}/start             Start the account's browser
  POST /api/accounts/{id}/stop              Stop the account's browser
  POST /api/accounts/start_all_autostart    Batch-start autostart accounts

The server shuts down cleanly on SIGINT and SIGTERM. Running
browsers are left alone; they are detached processes and survive
server restarts.

Examples:
  skulk serve                 # Listen on the configured address (default :8089)
  skulk serve --addr :9000    # Override the listen address`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	cfg := env.cfg
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}
	if err := env.ws.EnsureDirs(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer func() { _ = log.Sync() }()

	pr := probe.New()
	srv := httpserver.New(cfg, log, deps.Deps{
		Logger:    log,
		Store:     account.NewStore(env.ws),
		Launcher:  launcher.New(pr, env.ws, log, cfg.BrowserCmd, cfg.Display),
		Clipboard: clipboard.New(cfg.Display),
		Health:    health.NewChecker(pr, cfg.Display, cfg.WebsockifyPort),
		Workspace: env.ws,
	})

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		log.Info("shutting down", logger.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error("shutdown failed", logger.Error(err))
		}
	}()

	// Start blocks until shutdown
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
