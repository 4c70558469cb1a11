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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/HeadedBranch/auto-balatro/api"
	"github.com/HeadedBranch/auto-balatro/auth"
	"github.com/HeadedBranch/auto-balatro/config"
	"github.com/HeadedBranch/auto-balatro/loghandler"
	"github.com/HeadedBranch/auto-balatro/session"
	"github.com/HeadedBranch/auto-balatro/storage"
	"github.com/HeadedBranch/auto-balatro/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "server")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, cfg.Level())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "tag", "server", "error", err)
		os.Exit(1)
	}
	if store == nil {
		slog.Info("DATABASE_URL not set; score history disabled", "tag", "server")
	}

	var verifier *auth.Verifier
	if cfg.AuthBaseURL == "" {
		slog.Info("AUTH_BASE_URL not set; clients connect anonymously", "tag", "server")
	} else {
		verifier, err = auth.NewVerifier(cfg.AuthBaseURL)
		if err != nil {
			slog.Error("failed to set up token verification", "tag", "server", "error", err)
			os.Exit(1)
		}
		slog.Info("auth configured", "tag", "server", "base_url", cfg.AuthBaseURL)
	}

	slog.Info("configuration",
		"tag", "server",
		"port", cfg.WSPort,
		"approximate_unmodeled", cfg.ApproximateUnmodeled,
		"snapshot_buffer", cfg.SnapshotBuffer,
		"max_message_size", cfg.MaxMessageSize,
	)

	mgr := session.NewManager(ctx, cfg, store)

	hub := ws.NewHub(cfg, mgr, verifier)
	go hub.Run(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Get("/ws", hub.ServeWS)
	var history storage.HistoryStore
	if store != nil {
		history = store
	}
	r.Mount("/api", api.NewHandler(history, mgr.Engine(), mgr, verifier).Routes())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WSPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("scoring server listening", "tag", "server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "tag", "server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "tag", "server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "tag", "server", "error", err)
	}
	mgr.Wait()
	store.Close()
}
