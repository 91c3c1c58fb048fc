// Command mcp exposes the schedule pipeline as MCP tools over stdio, so an
// assistant can plan or preview a schedule on the user's behalf.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"schedule-planner/config"
	googleRepo "schedule-planner/internal/schedule/repository/google"
	"schedule-planner/internal/schedule/usecase"
	"schedule-planner/pkg/credential"
	"schedule-planner/pkg/datemath"
	"schedule-planner/pkg/gemini"
	"schedule-planner/pkg/log"
	"schedule-planner/pkg/transcribe"
)

const (
	serverName    = "schedule-planner"
	serverVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config: ", err)
		os.Exit(1)
	}

	// stdout carries the protocol
	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: log.EncodingJSON,
		Stderr:   true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiClient, err := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize Gemini: ", err)
	}

	dateMathParser, err := datemath.NewParser(cfg.Schedule.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Schedule.Timezone, err)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	var transcriber usecase.Transcriber
	if cfg.OpenAI.APIKey != "" {
		if whisper, trErr := transcribe.New(transcribe.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		}); trErr == nil {
			transcriber = whisper
		} else {
			logger.Warnf(ctx, "Voice transcription disabled: %v", trErr)
		}
	}

	creds, err := credential.Load(ctx, cfg.Google.LoadOptions())
	if err != nil {
		logger.Warnf(ctx, "Google credential not available: %v", err)
	}

	scheduleUC := usecase.New(logger, geminiClient, transcriber, googleRepo.New(creds, googleRepo.Config{
		CalendarID: cfg.Google.CalendarID,
		TaskListID: cfg.Google.TaskListID,
	}), dateMathParser, usecase.Config{
		Vision:               cfg.Schedule.Vision,
		DefaultEventDuration: cfg.Schedule.DefaultEventDuration,
		CommitTimeout:        cfg.Schedule.CommitTimeout,
		CommitConcurrency:    cfg.Schedule.CommitConcurrency,
	})

	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))
	registerTools(s, newTools(logger, scheduleUC, dateMathParser.Location(), cfg.Schedule.InvocationTimeout))

	logger.Info(ctx, "MCP server ready on stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Error(ctx, "MCP server stopped: ", err)
		os.Exit(1)
	}
}
