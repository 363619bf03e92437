package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"netmibd/internal/auth"
	"netmibd/internal/database"
	"netmibd/internal/handlers"
	"netmibd/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MIB objects over HTTP",
	Example: `  netmibd serve
  netmibd serve --addr 127.0.0.1:8161 --log-format json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default :NETMIBD_PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	userService := auth.NewUserService(db)
	created, err := userService.EnsureDefaultAdmin(ctx, cfg.DefaultAdmin, cfg.DefaultPassword)
	if err != nil {
		log.Warn("failed to create default admin", "error", err)
	} else if created {
		log.Warn("created default admin account, change its password", "username", cfg.DefaultAdmin)
	}

	a, err := buildAgent(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	sessions := auth.NewSessionManager(auth.SessionConfig{
		Secret: cfg.SessionSecret,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.SessionSecure,
	})
	router := handlers.Router{
		Auth:    handlers.NewAuthHandler(sessions, userService, log),
		MIB:     handlers.NewMIBHandler(a, userService, log),
		Audit:   handlers.NewAuditHandler(userService, log),
		Metrics: promhttp.Handler(),
		Require: middleware.NewAuthMiddleware(sessions, userService),
		Log:     log,
	}

	addr := flagAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
