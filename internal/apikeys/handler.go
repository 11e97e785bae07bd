package apikeys

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes API key administration.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers key management routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}/revoke", h.revoke)
	r.Delete("/{id}", h.delete)
}

type createKeyRequest struct {
	EmpNo     int64      `json:"empno" validate:"required"`
	KeyName   *string    `json:"key_name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if keys == nil {
		keys = []Key{}
	}
	shared.JSON(w, http.StatusOK, keys)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createKeyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Employee is required"))
		return
	}
	key, plain, err := h.service.Issue(r.Context(), req.EmpNo, req.KeyName, req.ExpiresAt)
	if err != nil {
		if shared.IsForeignKeyViolation(err) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Employee does not exist"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "key": key, "plain_key": plain})
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid key id"))
		return
	}
	key, err := h.service.Revoke(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Key not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "key": key})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid key id"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Key not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Key deleted"})
}
