package http

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	apierrors "linkpulse/internal/errors"
	"linkpulse/internal/store"
)

// DatasetHandler serves saved datasets to the dashboards.
type DatasetHandler struct {
	store        *store.DatasetStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(datasets *store.DatasetStore, logger *slog.Logger) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		store:        datasets,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.List)
	r.Get("/current", h.Current)
	r.Delete("/", h.Clear)

	r.Route("/{datasetID}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
	})
	return r
}

// DatasetCtx validates the dataset id parameter.
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "datasetID")
		if _, err := uuid.Parse(id); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("datasetID", "Invalid dataset id"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List handles GET /api/datasets.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.store.List()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.StorageError("list datasets", err))
		return
	}
	render.JSON(w, r, datasets)
}

// Current handles GET /api/datasets/current.
func (h *DatasetHandler) Current(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Current()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.StorageError("load current dataset", err))
		return
	}
	if doc == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotFound)
		return
	}
	render.JSON(w, r, doc)
}

// Get handles GET /api/datasets/{datasetID}.
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	doc, err := h.store.Dataset(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.StorageError("load dataset", err))
		return
	}
	render.JSON(w, r, doc)
}

// Delete handles DELETE /api/datasets/{datasetID}.
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.StorageError("delete dataset", err))
		return
	}
	render.NoContent(w, r)
}

// Clear handles DELETE /api/datasets.
func (h *DatasetHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.StorageError("clear datasets", err))
		return
	}
	render.NoContent(w, r)
}
