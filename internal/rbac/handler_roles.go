package rbac

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/shared"
)

// RolesHandler manages role CRUD.
type RolesHandler struct {
	logger *slog.Logger
	repo   Repository
}

// NewRolesHandler builds a RolesHandler instance.
func NewRolesHandler(logger *slog.Logger, repo Repository) *RolesHandler {
	return &RolesHandler{logger: logger, repo: repo}
}

// MountRoutes registers role routes.
func (h *RolesHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type roleRequest struct {
	RoleCode    string  `json:"role_code"`
	RoleName    string  `json:"role_name"`
	Description *string `json:"description"`
}

func (h *RolesHandler) list(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repo.ListRoles(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if roles == nil {
		roles = []Role{}
	}
	shared.JSON(w, http.StatusOK, roles)
}

func (h *RolesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	role, err := h.repo.CreateRole(r.Context(), Role{RoleCode: req.RoleCode, RoleName: req.RoleName, Description: req.Description})
	if err != nil {
		if shared.IsUniqueViolation(err) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindConflict, "Role code already exists"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "role": role})
}

func (h *RolesHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid role id"))
		return
	}
	var req roleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	role, err := h.repo.UpdateRole(r.Context(), Role{RoleID: id, RoleCode: req.RoleCode, RoleName: req.RoleName, Description: req.Description})
	if err != nil {
		if err == shared.ErrNotFound {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Role not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "role": role})
}

func (h *RolesHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid role id"))
		return
	}
	if err := h.repo.DeleteRole(r.Context(), id); err != nil {
		if err == shared.ErrNotFound {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Role not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Role deleted"})
}
