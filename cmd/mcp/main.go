package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gabrielchua/descriptive-theory/internal/mcpadapter"
	"github.com/gabrielchua/descriptive-theory/internal/setup"
	"github.com/gabrielchua/descriptive-theory/internal/setup/logger"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	_ = godotenv.Load()
	cfg := setup.LoadConfig()

	// Setup logging; logger.New writes to stderr, stdout carries the MCP protocol
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(cfg.LogLevel, cfg.LogFormat)
	processLogger := log.Logger

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, cfg, &processLogger)
	if err != nil {
		processLogger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			processLogger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		processLogger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "medical-report-simplifier",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "simplify_medical_report",
		Description: "Rewrite a medical report in plain language (english or chinese). Returns code 490 when the text is not medical.",
	}, mcpadapter.NewSimplifyHandler(deps.Pipeline))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_medical_text",
		Description: "Check whether a text is a medical report. Returns verdict 1 for medical text, 0 otherwise.",
	}, mcpadapter.NewClassifyHandler(deps.Guardrails))

	return server
}
