package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv2profile/internal/ingestion"
	"github.com/spigell/cv2profile/internal/pipeline"
	"github.com/spigell/cv2profile/internal/report"
	"github.com/spigell/cv2profile/internal/source"
)

const (
	uploadField     = "cv"
	requestIDHeader = "X-Request-Id"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type profileHandler struct {
	deps     Dependencies
	maxBytes int64
	now      func() time.Time
}

// Convert runs the pipeline on the uploaded multipart field "cv" and returns
// the report in the requested format, JSON by default.
func (h *profileHandler) Convert(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context())

	format := report.FormatJSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, err := report.ParseFormat(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err, "")
			return
		}
		format = parsed
	}

	blob, status, err := h.readUpload(w, r)
	if err != nil {
		writeError(w, status, err, "")
		return
	}

	req := pipeline.NewRequest(blob.Name, h.now())
	if user, _, ok := r.BasicAuth(); ok {
		req.User = user
	}

	state := pipeline.NewState(req)
	state.Blob = blob

	steps := pipeline.DefaultSteps()
	pipeline.DisableByName(steps, "fetch", "document uploaded")

	deps := pipeline.Deps{
		Extractor: h.deps.Extractor,
		Publisher: h.deps.Publisher,
		Logger:    logger,
	}

	if err := pipeline.Run(r.Context(), deps, steps, state); err != nil {
		status := statusFor(err)
		logger.Warn("conversion failed", zap.String("request_id", req.ID.String()), zap.Int("status", status), zap.Error(err))
		writeError(w, status, err, req.ID.String())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(requestIDHeader, req.ID.String())
	if err := report.Render(w, state.Report, format); err != nil {
		logger.Error("failed to render report", zap.Error(err))
	}
}

func (h *profileHandler) readUpload(w http.ResponseWriter, r *http.Request) (*source.Blob, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxBytes)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("multipart field %q is required: %w", uploadField, err)
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxBytes)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("read upload: %w", err)
	}

	return &source.Blob{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, 0, nil
}

func statusFor(err error) int {
	var stepErr *pipeline.StepError
	if !errors.As(err, &stepErr) {
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case stepErr.Step == "ingest":
		return http.StatusUnprocessableEntity
	case stepErr.Step == "extract":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set(requestIDHeader, requestID)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), RequestID: requestID})
}
