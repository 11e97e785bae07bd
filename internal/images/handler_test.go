package images

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderslab/hr-console/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubImageRepo struct {
	Repository

	stored     Image
	storedName string
	storedType string
	storedData []byte
	fetchData  ImageData
	fetchErr   error
	deleteErr  error
}

func (s *stubImageRepo) Store(_ context.Context, fileName, contentType string, data []byte) (Image, error) {
	s.storedName = fileName
	s.storedType = contentType
	s.storedData = data
	return s.stored, nil
}

func (s *stubImageRepo) Fetch(_ context.Context, _ int64) (ImageData, error) {
	return s.fetchData, s.fetchErr
}

func (s *stubImageRepo) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

func newImagesRouter(repo Repository) chi.Router {
	h := NewHandler(testLogger(), repo)
	r := chi.NewRouter()
	r.Route("/api/images", h.MountRoutes)
	return r
}

func multipartBody(t *testing.T, field, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadStoresFile(t *testing.T) {
	repo := &stubImageRepo{stored: Image{ImageID: 1, FileName: "logo.png"}}
	router := newImagesRouter(repo)

	payload := []byte{0x89, 'P', 'N', 'G'}
	body, contentType := multipartBody(t, "image", "logo.png", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logo.png", repo.storedName)
	assert.Equal(t, payload, repo.storedData)
	assert.NotEmpty(t, repo.storedType)
}

func TestUploadWithoutFileIsRejected(t *testing.T) {
	router := newImagesRouter(&stubImageRepo{})

	body, contentType := multipartBody(t, "attachment", "notes.txt", []byte("hi"))
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image file provided")
}

func TestServeWritesRawBytesWithStoredType(t *testing.T) {
	repo := &stubImageRepo{fetchData: ImageData{ContentType: "image/png", Data: []byte{1, 2, 3}}}
	router := newImagesRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{1, 2, 3}, rec.Body.Bytes())
}

func TestServeUnknownImage(t *testing.T) {
	repo := &stubImageRepo{fetchErr: shared.ErrNotFound}
	router := newImagesRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
