package telegram

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"schedule-planner/internal/schedule"
	pkgErrors "schedule-planner/pkg/errors"
	pkgLog "schedule-planner/pkg/log"
	pkgResponse "schedule-planner/pkg/response"
	pkgTelegram "schedule-planner/pkg/telegram"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

var errInvalidSecret = pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid webhook secret")

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and runs the pipeline in a background
// goroutine, since extraction plus commits easily exceed Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.validSecret(c.GetHeader(secretTokenHeader)) {
		h.l.Warnf(ctx, "telegram handler: rejected update with bad secret token")
		pkgResponse.Error(c, errInvalidSecret, nil)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx, cancel := context.WithTimeout(context.Background(), h.cfg.InvocationTimeout)
		defer cancel()

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Wait() {
	h.wg.Wait()
}

func (h *handler) validSecret(got string) bool {
	if h.cfg.SecretToken == "" {
		return true
	}
	return hmac.Equal([]byte(got), []byte(h.cfg.SecretToken))
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID

	switch strings.TrimSpace(msg.Text) {
	case "/start":
		return h.bot.SendMessage(ctx, chatID, welcomeMessage)
	case "/help":
		return h.bot.SendMessage(ctx, chatID, helpMessage)
	}

	input := h.buildInput(ctx, msg)
	if strings.TrimSpace(input.Text) == "" && input.Image == nil && input.Audio == nil {
		return h.bot.SendMessage(ctx, chatID, schedule.MessageNoInput)
	}

	if err := h.bot.SendMessage(ctx, chatID, processingMessage); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	output, err := h.uc.Process(ctx, input)
	if err != nil {
		h.l.Errorf(pkgLog.WithRunID(ctx, output.RunID), "telegram handler: Process failed: %v", err)
		return h.bot.SendMessage(ctx, chatID, h.errorReply(err))
	}

	return h.bot.SendMessage(ctx, chatID, schedule.RenderOutcome(output, h.cfg.Location))
}

// buildInput collects text, the largest photo and any voice note. Download
// failures are logged; the pipeline decides whether enough input is left.
func (h *handler) buildInput(ctx context.Context, msg *pkgTelegram.Message) schedule.ProcessInput {
	input := schedule.ProcessInput{Text: msg.Text}
	if input.Text == "" {
		input.Text = msg.Caption
	}

	if photo := msg.LargestPhoto(); photo != nil {
		data, name, err := h.download(ctx, photo.FileID)
		if err != nil {
			h.l.Warnf(ctx, "telegram handler: photo download failed: %v", err)
		} else {
			input.Image, input.ImageName = data, name
		}
	}

	var audioID string
	switch {
	case msg.Voice != nil:
		audioID = msg.Voice.FileID
	case msg.Audio != nil:
		audioID = msg.Audio.FileID
	}
	if audioID != "" {
		data, name, err := h.download(ctx, audioID)
		if err != nil {
			h.l.Warnf(ctx, "telegram handler: voice download failed: %v", err)
		} else {
			input.Audio, input.AudioName = data, name
		}
	}

	return input
}

func (h *handler) download(ctx context.Context, fileID string) ([]byte, string, error) {
	f, err := h.bot.GetFile(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	data, err := h.bot.DownloadFile(ctx, f.FilePath)
	if err != nil {
		return nil, "", err
	}
	return data, path.Base(f.FilePath), nil
}

func (h *handler) errorReply(err error) string {
	msg := schedule.RenderError(err)
	if errors.Is(err, schedule.ErrNotAuthenticated) && h.cfg.AuthURL != "" {
		msg = fmt.Sprintf("%s\n%s", msg, h.cfg.AuthURL)
	}
	return msg
}
