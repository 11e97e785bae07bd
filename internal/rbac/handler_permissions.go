package rbac

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/shared"
)

// PermissionsHandler manages per-role menu capability rows.
type PermissionsHandler struct {
	logger *slog.Logger
	repo   Repository
}

// NewPermissionsHandler builds a PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, repo Repository) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, repo: repo}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/{role_id}", h.listForRole)
	r.Post("/{role_id}", h.upsert)
	r.Post("/{role_id}/bulk", h.bulkUpsert)
}

func roleIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "role_id"), 10, 64)
}

func (h *PermissionsHandler) listForRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := roleIDParam(r)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid role id"))
		return
	}
	rows, err := h.repo.PermissionsForRole(r.Context(), roleID)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if rows == nil {
		rows = []RoleMenuRow{}
	}
	shared.JSON(w, http.StatusOK, rows)
}

func (h *PermissionsHandler) upsert(w http.ResponseWriter, r *http.Request) {
	roleID, err := roleIDParam(r)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid role id"))
		return
	}
	var perm MenuPermission
	if err := shared.DecodeJSON(r, &perm); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.repo.UpsertPermission(r.Context(), roleID, perm); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *PermissionsHandler) bulkUpsert(w http.ResponseWriter, r *http.Request) {
	roleID, err := roleIDParam(r)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid role id"))
		return
	}
	var req struct {
		Permissions []MenuPermission `json:"permissions"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.repo.BulkUpsertPermissions(r.Context(), roleID, req.Permissions); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true})
}
