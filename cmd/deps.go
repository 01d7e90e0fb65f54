package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/ai"
	"github.com/spigell/cv2profile/internal/ai/gemini"
	"github.com/spigell/cv2profile/internal/logger"
	"github.com/spigell/cv2profile/internal/publish"
	"github.com/spigell/cv2profile/internal/secrets"
	"github.com/spigell/cv2profile/internal/source"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

func newLogger() *zap.Logger {
	l, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func newExtractor(ctx context.Context, cfg *AIConfig, base *zap.Logger) (ai.Extractor, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set ai.gemini.api-key-file)", err)
	}

	genLogger := logger.WithCommonFields(base, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExtractor(generator, logger.WithCommonFields(base, "gemini", generator.Model()), cfg.Gemini.MaxLogLength), nil
}

// newFetcher registers local files and http(s) always, and s3 when configured.
func newFetcher(ctx context.Context, cfg *SourceConfig, base *zap.Logger) (*source.Router, error) {
	if cfg == nil {
		cfg = &SourceConfig{}
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = source.DefaultMaxBytes
	}

	web := source.NewHTTP(base, cfg.Timeout)
	web.MaxBytes = maxBytes
	if cfg.UserAgent != "" {
		web.UserAgent = cfg.UserAgent
	}

	router := source.NewRouter().
		Register(&source.File{MaxBytes: maxBytes}, "file").
		Register(web, "http", "https")

	if cfg.S3 == nil {
		return router, nil
	}

	secretKey, err := secrets.Optional(secrets.Source{Name: "s3 secret key", File: cfg.S3.SecretKeyFile})
	if err != nil {
		return nil, err
	}

	store, err := source.NewS3(ctx, source.S3Config{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: secretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring s3 source: %w", err)
	}
	store.MaxBytes = maxBytes

	return router.Register(store, "s3"), nil
}

// newPublisher returns nil without error when publishing is not configured.
func newPublisher(cfg *PublishConfig, base *zap.Logger) (*publish.AMQP, error) {
	if cfg == nil || cfg.AMQP == nil || strings.TrimSpace(cfg.AMQP.URL) == "" {
		return nil, nil
	}

	return publish.DialAMQP(publish.AMQPConfig{URL: cfg.AMQP.URL, Exchange: cfg.AMQP.Exchange}, base)
}
