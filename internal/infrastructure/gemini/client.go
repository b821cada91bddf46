// Package gemini adapts the Gemini generateContent endpoint to domain.TextGenerator.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Config holds Gemini client settings
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
}

// Client sends prompts to the Gemini generateContent endpoint
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	maxRetries  int
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	debug       bool
	logger      zerolog.Logger
}

// NewClient creates a new Gemini client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-pro"
	}

	// rate.Limit is per second; burst covers the retries of one call
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), retries)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       model,
		maxRetries:  retries,
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
		logger:      log.With().Str("component", "gemini").Logger(),
	}
}

// SetDebug enables or disables logging of prompts and raw responses
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Configured reports whether the client has the credential and endpoint it needs
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// endpoint builds {base}/{model}:generateContent?key={apiKey}
func (c *Client) endpoint() string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	return fmt.Sprintf("%s/%s:generateContent?%s", c.baseURL, c.model, params.Encode())
}

// Generate sends prompt and returns the generated text.
// Transport errors, 429 and 5xx responses are retried with exponential backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", domain.ErrRemoteUnavailable
	}

	body, err := json.Marshal(newGenerateRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	if c.debug {
		c.logger.Debug().Int("prompt_bytes", len(prompt)).Str("model", c.model).Msg("sending prompt")
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		text, retry, err := c.doGenerate(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retry || attempt == c.maxRetries {
			break
		}

		wait := c.backoff(attempt)
		c.logger.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("generateContent failed, retrying")

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrRemoteError, ctx.Err())
		case <-time.After(wait):
		}
	}

	return "", lastErr
}

// doGenerate performs one request. The bool result reports whether the failure is retryable.
func (c *Client) doGenerate(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ProductAdvisor/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		timedOut := errors.As(err, &netErr) && netErr.Timeout()
		retry := ctx.Err() == nil && !timedOut
		return "", retry, fmt.Errorf("%w: %v", domain.ErrRemoteError, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: read body: %v", domain.ErrRemoteError, err)
	}

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retry, fmt.Errorf("%w: status %d: %s", domain.ErrRemoteError, resp.StatusCode, truncate(string(raw), 200))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", false, fmt.Errorf("%w: decode envelope: %v", domain.ErrParseError, err)
	}

	text, err := extractText(&decoded)
	if err != nil {
		return "", false, err
	}

	if c.debug {
		c.logger.Debug().Str("text", truncate(text, 500)).Msg("received generation")
	}
	return text, false, nil
}

// redact strips the API key from errors that embed the request URL
func redact(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	}
	return strings.ReplaceAll(msg, apiKey, "REDACTED")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
