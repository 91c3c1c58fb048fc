package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	defaultTimeout = 30 * time.Second

	// MaxDownloadSize is the Bot API limit for getFile downloads.
	MaxDownloadSize = 20 << 20
)

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	fileURL    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("%s/bot%s", defaultAPIBase, token),
		fileURL:    fmt.Sprintf("%s/file/bot%s", defaultAPIBase, token),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
// Files are then downloaded from {url}/file.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
	b.fileURL = url + "/file"
}

// SetWebhook registers the webhook URL with Telegram. Telegram echoes secretToken
// in the X-Telegram-Bot-Api-Secret-Token header of every update.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	_, err := b.call(ctx, "setWebhook", SetWebhookRequest{URL: webhookURL, SecretToken: secretToken})
	return err
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error {
	_, err := b.call(ctx, "sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	return err
}

// GetFile resolves a file_id into a downloadable path.
func (b *Bot) GetFile(ctx context.Context, fileID string) (*File, error) {
	raw, err := b.call(ctx, "getFile", map[string]string{"file_id": fileID})
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode getFile result: %w", err)
	}
	if f.FilePath == "" {
		return nil, fmt.Errorf("telegram getFile returned no file_path for %s", fileID)
	}
	return &f, nil
}

// DownloadFile fetches the content of a file returned by GetFile.
func (b *Bot) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.fileURL+"/"+filePath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file download error %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("telegram file exceeds %d bytes", MaxDownloadSize)
	}
	return data, nil
}

// call posts payload to a Bot API method and returns the raw result.
func (b *Bot) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("telegram %s API error %d: %s", method, resp.StatusCode, string(raw))
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	return apiResp.Result, nil
}
