package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type modelCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	calls []modelCall
	queue []fakeResponse
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelCall{model: model, contents: contents, config: config})
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	originalSleep := sleep
	sleep = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { sleep = originalSleep })
	return &waits
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	waits := stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g := newGenerator(models, "gemini-pro", 2, zap.NewNop())

	output, err := g.GenerateContent(context.Background(), "system", genai.NewPartFromText("message"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}

	if len(*waits) != 1 || (*waits)[0] != baseRetryDelay {
		t.Fatalf("expected a single base delay, got %v", *waits)
	}

	for _, call := range models.calls {
		if call.model != "gemini-pro" {
			t.Fatalf("unexpected model: %q", call.model)
		}
		if call.config == nil || call.config.SystemInstruction == nil {
			t.Fatalf("expected system instruction to be set")
		}
		if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
			t.Fatalf("unexpected system instruction: %q", got)
		}
		if call.config.Temperature == nil || *call.config.Temperature != 0 {
			t.Fatalf("expected zero temperature")
		}
		if call.config.ResponseMIMEType != "application/json" {
			t.Fatalf("unexpected response mime type: %q", call.config.ResponseMIMEType)
		}
		if len(call.contents) != 1 || call.contents[0].Parts[0].Text != "message" {
			t.Fatalf("unexpected contents: %+v", call.contents)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	stubSleep(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := newGenerator(models, "gemini-pro", 2, zap.NewNop())

	_, err := g.GenerateContent(context.Background(), "sys", genai.NewPartFromText("msg"))
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected wrapped api error, got %v", err)
	}

	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := newGenerator(models, "gemini-pro", 3, zap.NewNop())

	_, err := g.GenerateContent(context.Background(), "sys", genai.NewPartFromText("msg"))
	if err == nil {
		t.Fatal("expected error when quota delay too long")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorHonoursShortQuotaDelay(t *testing.T) {
	waits := stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "7s"}},
	})
	models.enqueue(textResponse(`{"name": "Jane"}`), nil)

	g := newGenerator(models, "", 3, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "", genai.NewPartFromText("msg")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(*waits) != 1 || (*waits)[0] != 7*time.Second {
		t.Fatalf("expected the server requested delay, got %v", *waits)
	}

	if models.calls[0].model != defaultModel {
		t.Fatalf("expected default model, got %q", models.calls[0].model)
	}

	if models.calls[0].config.SystemInstruction != nil {
		t.Fatalf("expected no system instruction for empty system prompt")
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	stubSleep(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := newGenerator(models, "gemini-pro", 3, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "sys", genai.NewPartFromText("msg")); err == nil {
		t.Fatal("expected error")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorRejectsEmptyResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	g := newGenerator(models, "gemini-pro", 1, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "sys", genai.NewPartFromText("msg")); err == nil {
		t.Fatal("expected error for empty response")
	}

	if _, err := g.GenerateContent(context.Background(), "sys"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestRetryDelayBackoff(t *testing.T) {
	serverErr := genai.APIError{Code: http.StatusInternalServerError}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{5, 30 * time.Second},
	}

	for _, tt := range tests {
		delay, retry := retryDelay(serverErr, tt.attempt)
		if !retry || delay != tt.want {
			t.Fatalf("attempt %d: expected %v, got %v (retry=%v)", tt.attempt, tt.want, delay, retry)
		}
	}

	if _, retry := retryDelay(errors.New("dial tcp: connection refused"), 1); retry {
		t.Fatalf("expected no retry for non api errors")
	}

	if _, retry := retryDelay(&genai.APIError{Code: http.StatusBadGateway}, 1); !retry {
		t.Fatalf("expected retry for pointer api errors")
	}
}

func TestWaitForHonoursContext(t *testing.T) {
	block := make(chan struct{})
	originalSleep := sleep
	sleep = func(time.Duration) { <-block }
	t.Cleanup(func() {
		close(block)
		sleep = originalSleep
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := waitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := waitFor(context.Background(), 0); err != nil {
		t.Fatalf("expected no wait for zero duration, got %v", err)
	}
}
