package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"schedule-planner/internal/schedule"
	pkgLog "schedule-planner/pkg/log"
	pkgTelegram "schedule-planner/pkg/telegram"
)

const defaultInvocationTimeout = 2 * time.Minute

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Wait blocks until every in-flight update has been answered.
	Wait()
}

// Bot is the subset of the Bot API the handler uses.
type Bot interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetFile(ctx context.Context, fileID string) (*pkgTelegram.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// Config holds the webhook settings.
type Config struct {
	SecretToken       string        // expected X-Telegram-Bot-Api-Secret-Token; empty disables the check
	InvocationTimeout time.Duration // bound on one background pipeline run
	Location          *time.Location
	AuthURL           string // shown when the Google account is not connected
}

type handler struct {
	l   pkgLog.Logger
	uc  schedule.UseCase
	bot Bot
	cfg Config
	wg  sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc schedule.UseCase, bot Bot, cfg Config) Handler {
	if cfg.InvocationTimeout <= 0 {
		cfg.InvocationTimeout = defaultInvocationTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
		cfg: cfg,
	}
}
