package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	apierrors "linkpulse/internal/errors"
	"linkpulse/internal/parsing"
	"linkpulse/internal/store"
	"linkpulse/pkg/contracts/domain"
)

// UploadHandler accepts export file uploads, runs them through the parsing
// pipeline and persists the resulting dataset.
type UploadHandler struct {
	parser       *parsing.Parser
	store        *store.DatasetStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	limiter      *rate.Limiter
	maxFileSize  int64
}

// NewUploadHandler creates an upload handler. rps/burst bound how fast
// upload batches are accepted.
func NewUploadHandler(parser *parsing.Parser, datasets *store.DatasetStore, logger *slog.Logger, rps float64, burst int, maxFileSize int64) *UploadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 4
	}
	return &UploadHandler{
		parser:       parser,
		store:        datasets,
		logger:       logger.With(slog.String("component", "upload_handler")),
		errorHandler: apierrors.NewErrorHandler(logger),
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		maxFileSize:  maxFileSize,
	}
}

// Routes returns the upload routes.
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Upload)
	return r
}

// UploadResponse reports what one upload batch produced.
type UploadResponse struct {
	Dataset  domain.Dataset       `json:"dataset"`
	Failures []domain.FileFailure `json:"failures,omitempty"`
}

// Upload handles POST /api/upload. Files arrive as multipart form parts
// under "files"; an optional "name" field names the dataset. Per-file
// failures are reported in the response, not as a request failure.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		h.errorHandler.HandleError(w, r, apierrors.ErrRateLimitExceeded)
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("files", "At least one file is required"))
		return
	}

	files := make([]parsing.UploadFile, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		files = append(files, parsing.UploadFile{
			Name:        part.Filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	name := r.FormValue("name")
	if name == "" {
		name = fmt.Sprintf("Upload %s", time.Now().UTC().Format("2006-01-02 15:04"))
	}

	result := h.parser.ParseFiles(files)
	if result.IsEmpty() && len(result.Failures) == len(files) {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity, "NO_PARSEABLE_FILES",
			"No file in the batch could be parsed", result.Failures))
		return
	}

	ds, err := h.store.SaveDataset(name, result)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.StorageError("save dataset", err))
		return
	}

	h.logger.InfoContext(r.Context(), "upload ingested",
		slog.String("dataset_id", ds.ID),
		slog.Int("files", len(files)),
		slog.Int("failures", len(result.Failures)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{Dataset: ds, Failures: result.Failures})
}
