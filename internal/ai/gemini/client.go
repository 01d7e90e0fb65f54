package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-pro"
	defaultMaxRetries = 3
	baseRetryDelay    = 2 * time.Second
	maxRetryDelay     = 30 * time.Second
	// quota errors asking to wait longer than this are returned immediately
	maxQuotaDelay      = 30 * time.Second
	jsonResponseFormat = "application/json"
)

var (
	sleep = time.Sleep

	retryAfterPattern = regexp.MustCompile(`(?i)retry (?:after|in) ([0-9]+(?:\.[0-9]+)?)\s*(?:s|sec|secs|seconds?)\b`)
)

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client with retries for transient failures.
type Generator struct {
	models     modelsAPI
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, maxRetries, logger), nil
}

func newGenerator(models modelsAPI, model string, maxRetries int, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{models: models, model: model, maxRetries: maxRetries, logger: logger}
}

// GenerateContent sends the parts as one user turn under the system
// instruction and returns the textual response. Temperature is fixed at zero
// and JSON output is requested.
func (g *Generator) GenerateContent(ctx context.Context, system string, parts ...*genai.Part) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}
	if len(parts) == 0 {
		return "", errors.New("content must not be empty")
	}

	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: jsonResponseFormat,
	}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			return responseText(resp)
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("gemini request failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
		)

		if err := waitFor(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// retryDelay decides whether err is worth another attempt and how long to wait.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return 0, false
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if delay, ok := quotaDelay(apiErr); ok {
			return delay, delay <= maxQuotaDelay
		}
	case apiErr.Code >= http.StatusInternalServerError:
	default:
		return 0, false
	}

	delay := baseRetryDelay << (attempt - 1)
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay, true
}

// quotaDelay extracts the server requested wait from RetryInfo details or the message.
func quotaDelay(apiErr genai.APIError) (time.Duration, bool) {
	for _, detail := range apiErr.Details {
		raw, ok := detail["retryDelay"].(string)
		if !ok {
			continue
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d, true
		}
	}

	match := retryAfterPattern.FindStringSubmatch(apiErr.Message)
	if match == nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}

func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	pause := sleep
	done := make(chan struct{})
	go func() {
		defer close(done)
		pause(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
