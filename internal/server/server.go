// Package server exposes CV conversion over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/ai"
	"github.com/spigell/cv2profile/internal/publish"
	"github.com/spigell/cv2profile/internal/source"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	authRealm              = "cv2profile"
)

type WebAPI struct {
	router *chi.Mux
	logger *zap.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Extractor ai.Extractor
	Publisher publish.Publisher
}

type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	MaxUploadBytes  int64         `mapstructure:"max-upload-bytes"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"-"`
	Dependencies    Dependencies  `mapstructure:"-"`
	// Now defaults to time.Now.
	Now func() time.Time `mapstructure:"-"`
}

func NewWebAPI(logger *zap.Logger, config Config) *WebAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = source.DefaultMaxBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	profiles := &profileHandler{
		deps:     config.Dependencies,
		maxBytes: config.MaxUploadBytes,
		now:      config.Now,
	}

	router := chi.NewRouter()

	router.Use(Logger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", health)

	router.Route("/api/v1", func(r chi.Router) {
		if config.Username != "" {
			r.Use(middleware.BasicAuth(authRealm, map[string]string{config.Username: config.Password}))
		}
		r.Post("/profiles", profiles.Convert)
	})

	return &WebAPI{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: config.ShutdownTimeout,
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info("starting server", zap.String("addr", w.server.Addr))
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error("graceful shutdown failed", zap.Error(err))
			err = w.server.Close()
		}

		return err
	}
}
