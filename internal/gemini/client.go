// Package gemini implements the generation gateway over the Google Gemini
// generateContent REST API (text and vision).
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrUpstream marks any provider-side failure: network, quota, malformed
// response. Callers see a single generic error; there is no retry.
var ErrUpstream = errors.New("generation upstream error")

// Fallback texts returned when the provider answers with no text at all.
// Matching the user-facing language of the rest of the API.
const (
	fallbackTarot     = "Tarot yorumu oluşturulamadı."
	fallbackCoffee    = "Kahve falı yorumu oluşturulamadı."
	fallbackHoroscope = "Günlük burç yorumu oluşturulamadı."
	fallbackDream     = "Rüya yorumu oluşturulamadı."
)

// Client calls the Gemini API. One provider call per invocation, bounded by
// a fixed timeout; no caching or deduplication of identical requests.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	textModel   string
	visionModel string
	timeout     time.Duration
	logger      *slog.Logger
}

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	VisionModel string
	Timeout     time.Duration
}

// NewClient creates a Gemini client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, opts Options, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		textModel:   opts.TextModel,
		visionModel: opts.VisionModel,
		timeout:     opts.Timeout,
		logger:      logger,
	}
}

// Request/response shapes of the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// InterpretTarot generates an interpretation for a past/present/future
// three-card spread. Card order is meaningful and preserved.
func (c *Client) InterpretTarot(ctx context.Context, cards []string) (string, error) {
	text, err := c.generate(ctx, c.textModel, []part{{Text: tarotPrompt(cards)}})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if text == "" {
		return fallbackTarot, nil
	}
	return text, nil
}

// AnalyzeCoffee sends the cup photo plus a fixed instruction prompt to the
// vision model.
func (c *Client) AnalyzeCoffee(ctx context.Context, image []byte, mimeType string) (string, error) {
	parts := []part{
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
		{Text: coffeePrompt},
	}

	text, err := c.generate(ctx, c.visionModel, parts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if text == "" {
		return fallbackCoffee, nil
	}
	return text, nil
}

// DailyHoroscope generates today's reading for the given zodiac sign.
// The embedded date is display-only, not a caching key.
func (c *Client) DailyHoroscope(ctx context.Context, zodiacSign string) (string, error) {
	today := time.Now().Format("02.01.2006")
	text, err := c.generate(ctx, c.textModel, []part{{Text: horoscopePrompt(zodiacSign, today)}})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if text == "" {
		return fallbackHoroscope, nil
	}
	return text, nil
}

// InterpretDream generates a dream analysis. Emotion may be empty.
func (c *Client) InterpretDream(ctx context.Context, description, emotion string) (string, error) {
	text, err := c.generate(ctx, c.visionModel, []part{{Text: dreamPrompt(description, emotion)}})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if text == "" {
		return fallbackDream, nil
	}
	return text, nil
}

// generate performs a single generateContent call against the given model.
func (c *Client) generate(ctx context.Context, model string, parts []part) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(string(respBody), 512))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := extractText(genResp)

	if c.logger != nil {
		c.logger.DebugContext(ctx, "gemini call completed",
			slog.String("model", model),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("response_chars", len(text)),
		)
	}

	return text, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
