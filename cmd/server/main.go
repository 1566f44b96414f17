// Satei-bot - LINE sale-appraisal intake server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/config"
	"github.com/fudosan-dx/satei-bot/internal/devchat"
	"github.com/fudosan-dx/satei-bot/internal/dialog"
	"github.com/fudosan-dx/satei-bot/internal/linebot"
	"github.com/fudosan-dx/satei-bot/internal/notify"
	"github.com/fudosan-dx/satei-bot/internal/store"
	"github.com/fudosan-dx/satei-bot/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "session_backend", cfg.SessionBackend)

	sessions, err := newSessionStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()

	var notifier dialog.Notifier
	if cfg.SheetsWebhookURL != "" || cfg.SlackWebhookURL != "" {
		notifier = notify.NewDispatcher(cfg.SheetsWebhookURL, cfg.SlackWebhookURL)
		slog.Info("Submission dispatcher enabled",
			"sheets", cfg.SheetsWebhookURL != "", "slack", cfg.SlackWebhookURL != "")
	} else {
		slog.Info("No notification endpoints configured, submissions are log-only")
	}

	engine := dialog.New(sessions, notifier, cfg.PrivacyURL)

	// Setup router.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if cfg.HasLINECredentials() {
		client := linebot.NewClient(cfg.ChannelAccessToken)
		webhook := linebot.NewWebhookHandler(engine, client, cfg.ChannelSecret)
		r.Post("/webhook", webhook.ServeHTTP)
		slog.Info("LINE webhook mounted")
	}

	if cfg.DevChatEnabled {
		r.Get("/dev/chat", devchat.NewHandler(engine).ServeHTTP)
		r.Handle("/dev/*", http.StripPrefix("/dev", web.Handler()))
		slog.Info("Dev chat mounted", "console", "/dev/")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // dev chat holds long-lived WebSocket connections
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func newSessionStore(cfg *config.Config) (store.SessionStore, error) {
	switch cfg.SessionBackend {
	case config.BackendSQLite:
		return store.NewSQLite(cfg.DBPath)
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.NewRedis(ctx, cfg.RedisAddr, cfg.SessionTTL)
	default:
		return store.NewMemory(), nil
	}
}
