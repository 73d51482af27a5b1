package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/parsing"
	"linkpulse/internal/store"
)

func newUploadHandler(t *testing.T) (*UploadHandler, *store.DatasetStore) {
	t.Helper()
	datasets := store.NewDatasetStore(t.TempDir(), nil)
	parser := parsing.NewParser(nil, parsing.Limits{})
	return NewUploadHandler(parser, datasets, nil, 100, 100, 50<<20), datasets
}

func multipartBody(t *testing.T, name string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, w.WriteField("name", name))
	}
	for fileName, data := range files {
		part, err := w.CreateFormFile("files", fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	h, datasets := newUploadHandler(t)

	csvData := []byte("Date,Impressions,Clicks\n2025-01-01,100,4\n2025-01-02,150,6\n")
	body, contentType := multipartBody(t, "January", map[string][]byte{"daily.csv": csvData})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "January", resp.Dataset.Name)
	assert.Equal(t, 2, resp.Dataset.Counts.Daily)
	assert.Empty(t, resp.Failures)

	doc, err := datasets.Dataset(resp.Dataset.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Daily, 2)
}

func TestUploadPartialFailure(t *testing.T) {
	h, _ := newUploadHandler(t)

	body, contentType := multipartBody(t, "", map[string][]byte{
		"daily.csv":   []byte("Date,Impressions,Clicks\n2025-01-01,100,4\n"),
		"broken.xlsx": []byte("definitely not a workbook"),
	})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "broken.xlsx", resp.Failures[0].FileName)
	assert.Equal(t, 1, resp.Dataset.Counts.Daily)
}

func TestUploadAllFilesFail(t *testing.T) {
	h, _ := newUploadHandler(t)

	body, contentType := multipartBody(t, "", map[string][]byte{
		"broken.xlsx": []byte("still not a workbook"),
	})

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_PARSEABLE_FILES")
}

func TestUploadNoFiles(t *testing.T) {
	h, _ := newUploadHandler(t)

	body, contentType := multipartBody(t, "whatever", nil)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRateLimited(t *testing.T) {
	datasets := store.NewDatasetStore(t.TempDir(), nil)
	parser := parsing.NewParser(nil, parsing.Limits{})
	h := NewUploadHandler(parser, datasets, nil, 0.001, 1, 50<<20)

	csvData := []byte("Date,Impressions,Clicks\n2025-01-01,100,4\n")

	send := func() int {
		body, contentType := multipartBody(t, "", map[string][]byte{"daily.csv": csvData})
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
