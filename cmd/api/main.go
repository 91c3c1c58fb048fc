package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"schedule-planner/config"
	_ "schedule-planner/docs" // Swagger docs
	"schedule-planner/internal/httpserver"
	"schedule-planner/internal/middleware"
	scheduleHTTP "schedule-planner/internal/schedule/delivery/http"
	tgDelivery "schedule-planner/internal/schedule/delivery/telegram"
	googleRepo "schedule-planner/internal/schedule/repository/google"
	"schedule-planner/internal/schedule/usecase"
	"schedule-planner/pkg/credential"
	"schedule-planner/pkg/datemath"
	"schedule-planner/pkg/gemini"
	"schedule-planner/pkg/log"
	"schedule-planner/pkg/telegram"
	"schedule-planner/pkg/transcribe"
)

// @title       Schedule Planner API
// @description Turns text, screenshots and voice notes into Google Calendar events and Google Tasks using Gemini.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Schedule Planner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Clients
	geminiClient, err := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Gemini: ", err)
		os.Exit(1)
	}

	dateMathParser, err := datemath.NewParser(cfg.Schedule.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Schedule.Timezone, err)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	var transcriber usecase.Transcriber
	if cfg.OpenAI.APIKey != "" {
		whisper, trErr := transcribe.New(transcribe.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if trErr != nil {
			logger.Warnf(ctx, "Voice transcription disabled: %v", trErr)
		} else {
			transcriber = whisper
			logger.Info(ctx, "✅ Voice transcription enabled")
		}
	} else {
		logger.Warn(ctx, "OPENAI_KEY not set, voice notes will be rejected")
	}

	// 4. Google credential (optional at startup; commits fail fast without it)
	creds, err := credential.Load(ctx, cfg.Google.LoadOptions())
	if err != nil {
		logger.Warnf(ctx, "Google credential not available: %v", err)
		logger.Warn(ctx, "→ Run `go run ./scripts/google-auth` or open /auth/google/login to connect")
	} else {
		logger.Infof(ctx, "Google credential state: %s", creds.State())
	}

	// 5. Schedule domain
	backends := googleRepo.New(creds, googleRepo.Config{
		CalendarID: cfg.Google.CalendarID,
		TaskListID: cfg.Google.TaskListID,
	})

	scheduleUC := usecase.New(logger, geminiClient, transcriber, backends, dateMathParser, usecase.Config{
		Vision:               cfg.Schedule.Vision,
		DefaultEventDuration: cfg.Schedule.DefaultEventDuration,
		CommitTimeout:        cfg.Schedule.CommitTimeout,
		CommitConcurrency:    cfg.Schedule.CommitConcurrency,
	})

	var oauth scheduleHTTP.OAuthFlow
	var googleStatus func() string
	if creds != nil {
		oauth = creds
		googleStatus = func() string { return creds.State().String() }
	}

	// 6. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

		telegramHandler = tgDelivery.New(logger, scheduleUC, telegramBot, tgDelivery.Config{
			SecretToken:       cfg.Telegram.SecretToken,
			InvocationTimeout: cfg.Schedule.InvocationTimeout,
			Location:          dateMathParser.Location(),
			AuthURL:           loginURL(cfg.Google.RedirectURI),
		})

		// Register webhook: configured URL or auto-detected ngrok tunnel
		webhookURL, whErr := resolveWebhookURL(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.NgrokAPIURL, newTunnelDetector())
		if whErr != nil {
			logger.Warnf(ctx, "Could not resolve Telegram webhook URL: %v", whErr)
		} else if whErr = telegramBot.SetWebhook(ctx, webhookURL, cfg.Telegram.SecretToken); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		ScheduleUC:      scheduleUC,
		OAuth:           oauth,
		Location:        dateMathParser.Location(),
		Middleware:      middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.RateLimit.PerMin}),
		TelegramHandler: telegramHandler,
		GoogleStatus:    googleStatus,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// loginURL derives the consent entry point from the OAuth redirect URI.
func loginURL(redirectURI string) string {
	if !strings.HasSuffix(redirectURI, "/auth/google/callback") {
		return ""
	}
	return strings.TrimSuffix(redirectURI, "/callback") + "/login"
}
