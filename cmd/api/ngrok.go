package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const webhookPath = "/webhook/telegram"

type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// tunnelDetector polls the ngrok local API until a public tunnel appears.
type tunnelDetector struct {
	client   *http.Client
	attempts int
	interval time.Duration
}

func newTunnelDetector() tunnelDetector {
	return tunnelDetector{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 10,
		interval: 3 * time.Second,
	}
}

// resolveWebhookURL prefers the configured URL and otherwise asks ngrok.
func resolveWebhookURL(ctx context.Context, configured, ngrokAPIBase string, d tunnelDetector) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if ngrokAPIBase == "" {
		return "", fmt.Errorf("no webhook url configured and ngrok api disabled")
	}
	publicURL, err := d.detect(ctx, ngrokAPIBase)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(publicURL, "/") + webhookPath, nil
}

// detect returns the first HTTPS tunnel, or any tunnel when none is HTTPS.
func (d tunnelDetector) detect(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		publicURL, err := d.fetch(ctx, url)
		if err == nil && publicURL != "" {
			return publicURL, nil
		}
		lastErr = err

		if attempt < d.attempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(d.interval):
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("ngrok API not reachable after %d attempts: %w", d.attempts, lastErr)
	}
	return "", fmt.Errorf("ngrok has no active tunnels after %d attempts", d.attempts)
}

func (d tunnelDetector) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", nil
}
