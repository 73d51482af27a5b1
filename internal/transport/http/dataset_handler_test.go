package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/store"
	"linkpulse/pkg/contracts/domain"
)

func newDatasetHandler(t *testing.T) (*DatasetHandler, *store.DatasetStore) {
	t.Helper()
	datasets := store.NewDatasetStore(t.TempDir(), nil)
	return NewDatasetHandler(datasets, nil), datasets
}

func saveSample(t *testing.T, datasets *store.DatasetStore, name string) domain.Dataset {
	t.Helper()
	ds, err := datasets.SaveDataset(name, &domain.ParseResult{
		Posts: []domain.Post{{Title: "One", ActivityID: "7387527938654691329"}},
	})
	require.NoError(t, err)
	return ds
}

func TestDatasetList(t *testing.T) {
	h, datasets := newDatasetHandler(t)
	saveSample(t, datasets, "first")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listed []domain.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "first", listed[0].Name)
}

func TestDatasetGet(t *testing.T) {
	h, datasets := newDatasetHandler(t)
	ds := saveSample(t, datasets, "target")

	req := httptest.NewRequest(http.MethodGet, "/"+ds.ID, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, ds.ID, doc.Dataset.ID)
	require.Len(t, doc.Posts, 1)
}

func TestDatasetGetNotFound(t *testing.T) {
	h, _ := newDatasetHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATASET_NOT_FOUND")
}

func TestDatasetGetInvalidID(t *testing.T) {
	h, _ := newDatasetHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDatasetCurrent(t *testing.T) {
	h, datasets := newDatasetHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ds := saveSample(t, datasets, "latest")

	req = httptest.NewRequest(http.MethodGet, "/current", nil)
	rec = httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, ds.ID, doc.Dataset.ID)
}

func TestDatasetDelete(t *testing.T) {
	h, datasets := newDatasetHandler(t)
	ds := saveSample(t, datasets, "doomed")

	req := httptest.NewRequest(http.MethodDelete, "/"+ds.ID, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := datasets.Dataset(ds.ID)
	assert.Error(t, err)
}

func TestDatasetClear(t *testing.T) {
	h, datasets := newDatasetHandler(t)
	saveSample(t, datasets, "a")
	saveSample(t, datasets, "b")

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	listed, err := datasets.List()
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler("1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}
