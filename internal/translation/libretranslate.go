package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrEmptyTranslation = errors.New("translation service returned no text")

// LibreTranslate is a client for a LibreTranslate compatible /translate
// endpoint.
type LibreTranslate struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewLibreTranslate creates a client for the server at baseURL.
func NewLibreTranslate(baseURL, apiKey string, timeout time.Duration) *LibreTranslate {
	return &LibreTranslate{
		apiURL: strings.TrimRight(baseURL, "/") + "/translate",
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate sends text to the service.
func (c *LibreTranslate) Translate(ctx context.Context, text, from, to string) (string, error) {
	body, err := json.Marshal(translateRequest{Q: text, Source: from, Target: to, Format: "text", APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var data translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service error (status %d): %s", resp.StatusCode, data.Error)
	}

	text = strings.TrimSpace(data.TranslatedText)
	if text == "" {
		return "", ErrEmptyTranslation
	}
	return text, nil
}
