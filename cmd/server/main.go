package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GranFenrir/realtime-chat/internal/chat"
	"github.com/GranFenrir/realtime-chat/internal/observability"
	"github.com/GranFenrir/realtime-chat/internal/server"
)

func main() {
	cfg := server.LoadConfig()

	log := observability.NewLogger("chat-relay")
	defer func() { _ = log.Sync() }()

	hub := chat.NewHub(cfg.HistorySize, log)
	handler := server.NewHandler(hub, cfg, log)
	srv := server.CreateServer(cfg, server.NewRouter(handler))

	ctx, cancel := setupSignalHandler(log)
	defer cancel()

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	if err := server.ShutdownServer(srv, cfg.ShutdownTimeout, log); err != nil {
		log.Warn("shutdown did not complete cleanly", zap.Error(err))
	}
	hub.Shutdown()
	log.Info("shutdown complete")
}

func setupSignalHandler(log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, initiating shutdown", zap.String("signal", sig.String()))
		cancel()
	}()
	return ctx, cancel
}
