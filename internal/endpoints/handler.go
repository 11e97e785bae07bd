package endpoints

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes the API endpoint registry.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validate: validator.New()}
}

// MountRoutes registers registry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("page") == "" {
		all, err := h.repo.ListAll(r.Context())
		if err != nil {
			shared.WriteError(w, r, h.logger, err)
			return
		}
		if all == nil {
			all = []Endpoint{}
		}
		shared.JSON(w, http.StatusOK, all)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	list, total, err := h.repo.ListPage(r.Context(), page, limit)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []Endpoint{}
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"data":  list,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in EndpointInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Name, method and path are required"))
		return
	}
	endpoint, err := h.repo.Create(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusCreated, endpoint)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid endpoint id"))
		return
	}
	var in EndpointInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	endpoint, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Endpoint not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, endpoint)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid endpoint id"))
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Endpoint not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Deleted successfully"})
}
