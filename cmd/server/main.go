package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siherrmann/meetinggraph"
	"github.com/siherrmann/meetinggraph/helper"
)

func main() {
	logger := helper.NewLogger(slog.LevelInfo)
	slog.SetDefault(logger)

	config, err := meetinggraph.NewConfigFromEnv()
	if err != nil {
		slog.Error("reading configuration", "error", err)
		os.Exit(1)
	}
	config.Logger = logger

	addr := helper.GetEnv("LISTEN_ADDR", ":8000")
	corsOrigins := helper.GetEnv("CORS_ORIGINS", "*")

	graph, err := meetinggraph.New(context.Background(), config)
	if err != nil {
		slog.Error("creating meeting graph", "error", err)
		os.Exit(1)
	}
	defer graph.Close(context.Background())

	h := newHandler(graph)

	// Middleware chain: recovery -> cors -> logging -> mux
	var handler http.Handler = h.routes()
	handler = logMiddleware(handler)
	handler = corsMiddleware(corsOrigins, handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // extraction waits on the model
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
