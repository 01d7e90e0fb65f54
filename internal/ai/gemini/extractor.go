package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/cv2profile/internal/ai"
	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/logger"
	"github.com/spigell/cv2profile/internal/profile"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system string, parts ...*genai.Part) (string, error)
	Model() string
}

type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	datetimePlaceholder = "{{DATETIME}}"
)

func NewExtractor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Extractor) Extract(ctx context.Context, req *ai.Request) (*ai.Extraction, error) {
	if req == nil {
		return nil, errors.New("extraction request is required")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.Attachment == nil {
		return nil, errors.New("document has neither text nor attachment")
	}

	system := buildPrompt(req.Today)

	parts := make([]*genai.Part, 0, 2)
	if text != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}
	if req.Attachment != nil && len(req.Attachment.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Attachment.Data, req.Attachment.MIME))
	}

	e.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)),
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.Bool("attachment", req.Attachment != nil),
		zap.String("text_preview", logger.Truncate(text, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, system, parts...)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, e.maxLogLen)),
	)

	payload, err := profile.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return &ai.Extraction{
		Payload: payload,
		Raw:     raw,
		Model:   e.generator.Model(),
	}, nil
}

// buildPrompt fills in the current date as DD-MM-YYYY.
func buildPrompt(today duration.Date) string {
	return strings.ReplaceAll(promptTemplate, datetimePlaceholder, today.String())
}
