// Package insight wraps the Gemini generateContent REST API behind a small
// text-in, text-out client. One call, no retries; failures are normalized to
// the service error taxonomy before they reach a handler.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// DefaultBaseURL is the Gemini API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is used when the config leaves the model blank.
const DefaultModel = "gemini-2.0-flash-exp"

// fallbackText is returned when the API answers with no candidates.
const fallbackText = "Unable to generate insights at this time."

// Config carries the Gemini connection settings.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient constructs a Gemini client. A missing API key is allowed here;
// Generate reports it as a configuration error per call.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewDefault("insight")
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt and returns the model's text. Errors are
// normalized: configuration-missing, quota-exceeded, rate-limited or
// offline. There are no retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperrors.AINotConfigured()
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", apperrors.Internal("encode insight request", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Internal("build insight request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.AIOffline(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.AIOffline(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.normalizeStatus(resp.StatusCode, raw)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.AIOffline(err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return fallbackText, nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// normalizeStatus maps a non-200 Gemini response onto the error taxonomy.
func (c *Client) normalizeStatus(status int, raw []byte) error {
	var detail apiError
	_ = json.Unmarshal(raw, &detail)
	message := strings.ToLower(detail.Error.Message + " " + detail.Error.Status)

	c.log.WithFields(map[string]interface{}{
		"status":  status,
		"api_err": detail.Error.Status,
	}).Warn("insight request failed")

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.AINotConfigured()
	case strings.Contains(message, "quota") || strings.Contains(message, "resource_exhausted"):
		return apperrors.AIQuotaExceeded()
	case status == http.StatusTooManyRequests:
		return apperrors.AIRateLimited()
	default:
		return apperrors.AIOffline(fmt.Errorf("gemini status %d", status))
	}
}
