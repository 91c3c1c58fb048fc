package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is the speech-to-text model.
	DefaultModel = openai.Whisper1

	// DefaultTimeout bounds one transcription request.
	DefaultTimeout = 30 * time.Second

	defaultFileName = "voice.ogg"
)

// ErrEmptyAudio is returned for a zero-length recording.
var ErrEmptyAudio = errors.New("transcribe: empty audio")

// Config holds the speech-to-text client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client turns recorded speech into text.
type Client struct {
	client *openai.Client
	model  string
}

// New creates a transcription client backed by the OpenAI audio API.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("transcribe: APIKey is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

// Transcribe returns the transcript of audio. fileName carries the container format
// (".ogg", ".mp3", ".wav", ...) the API uses to decode the upload.
func (c *Client) Transcribe(ctx context.Context, audio []byte, fileName string) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}
	if fileName == "" {
		fileName = defaultFileName
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: fileName,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: request failed: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
