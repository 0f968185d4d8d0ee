package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/siherrmann/meetinggraph"
	"github.com/siherrmann/meetinggraph/helper"
	"github.com/siherrmann/meetinggraph/mcpserver"
)

const version = "1.0.0"

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	flag.Parse()

	// Stdout carries the stdio protocol.
	logger := slog.New(helper.NewPrettyHandler(os.Stderr, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config, err := meetinggraph.NewConfigFromEnv()
	if err != nil {
		logger.Error("Failed to read configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	config.Logger = logger

	graph, err := meetinggraph.New(ctx, config)
	if err != nil {
		logger.Error("Failed to create meeting graph", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer graph.Close(context.Background())

	srv := mcpserver.New(graph, version)

	switch *transport {
	case "stdio":
		logger.Info("Meetinggraph MCP server starting (stdio)")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		httpServer := &http.Server{Addr: addr, Handler: handler}
		go func() {
			<-ctx.Done()
			httpServer.Shutdown(context.Background())
		}()

		logger.Info("Meetinggraph MCP server listening", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", slog.String("error", err.Error()))
		}
	default:
		logger.Error("Unknown transport (use stdio or http)", slog.String("transport", *transport))
	}
}
