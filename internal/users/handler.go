package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coderslab/hr-console/internal/auth"
	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes administrative account CRUD. Passwords are hashed with the
// same scheme the login flow verifies against.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	hasher   auth.PasswordHasher
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Repository, hasher auth.PasswordHasher) *Handler {
	return &Handler{logger: logger, repo: repo, hasher: hasher, validate: validator.New()}
}

// MountRoutes registers account routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	list, total, err := h.repo.List(r.Context(), page, limit)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []AppUser{}
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"data":  list,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateUserInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Missing required fields"))
		return
	}
	in.Email = strings.ToLower(in.Email)

	user, err := h.repo.Create(r.Context(), in, h.hasher.Hash(in.Password))
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid user id"))
		return
	}
	var in UpdateUserInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if in.Empty() {
		shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "No changes"})
		return
	}
	if in.Email != nil {
		lowered := strings.ToLower(*in.Email)
		in.Email = &lowered
	}
	var passwordHash *string
	if in.Password != nil && *in.Password != "" {
		hashed := h.hasher.Hash(*in.Password)
		passwordHash = &hashed
	}

	user, err := h.repo.Update(r.Context(), id, in, passwordHash)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "User not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid user id"))
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "User not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted"})
}
