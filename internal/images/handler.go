package images

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes image storage.
type Handler struct {
	logger *slog.Logger
	repo   Repository
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers image routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upload)
	r.Get("/{id}", h.serve)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []Image{}
	}
	shared.JSON(w, http.StatusOK, list)
}

// upload accepts a multipart form with an "image" part, held in memory up to
// the 5 MB cap.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "No image file provided"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "No image file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	img, err := h.repo.Store(r.Context(), header.Filename, contentType, data)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "image": img})
}

// serve writes the raw bytes with the stored content type.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	payload, err := h.repo.Fetch(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", payload.ContentType)
	_, _ = w.Write(payload.Data)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid image id"))
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Image not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Image deleted"})
}
