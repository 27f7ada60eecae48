package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/observability/telemetry"
	"github.com/seu-repo/alexa-gemini-skill/internal/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Alexa enforces a hard 10-second deadline on skill responses.
	// gemini-1.5-flash is the lowest-latency variant, which keeps the round
	// trip inside that window.
	DefaultModel = "gemini-1.5-flash"
)

// Client calls the Gemini generateContent REST API. The API key is resolved
// through the secret source on every call so key rotation takes effect
// without a restart.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	secrets    ports.SecretSource
	baseURL    string
	model      string
	log        *zap.Logger
}

type Config struct {
	Model   string
	BaseURL string
	// Timeout bounds the HTTP round trip. Zero means no in-process timeout;
	// the platform's own deadline is then the only bound.
	Timeout        time.Duration
	BreakerEnabled bool
}

func NewClient(cfg Config, secrets ports.SecretSource, log *zap.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var breaker *gobreaker.CircuitBreaker
	if cfg.BreakerEnabled {
		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gemini",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn("Gemini circuit breaker state changed",
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		secrets:    secrets,
		baseURL:    baseURL,
		model:      model,
		log:        log,
	}
}

// Wire types for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateText sends the prompt as a single-turn request and returns the
// first candidate's text verbatim.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, prompt)

	status := "ok"
	if err != nil {
		status = "error"
	}
	telemetry.GeminiRequestsTotal.WithLabelValues(status).Inc()
	telemetry.GeminiLatency.Observe(time.Since(start).Seconds())

	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.breaker == nil {
		return c.doGenerate(ctx, prompt)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (string, error) {
	apiKey, err := c.secrets.GeminiAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("gemini api: %s (%s)", out.Error.Message, out.Error.Status)
		}
		return "", fmt.Errorf("gemini api: unexpected status %d", resp.StatusCode)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini api: empty response")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

// BreakerOpen reports whether the outbound circuit breaker is currently
// rejecting calls. Used by the readiness probe.
func (c *Client) BreakerOpen() bool {
	return c.breaker != nil && c.breaker.State() == gobreaker.StateOpen
}
