package rbac

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/shared"
)

// MenusHandler manages the menu tree.
type MenusHandler struct {
	logger *slog.Logger
	repo   Repository
}

// NewMenusHandler builds a MenusHandler instance.
func NewMenusHandler(logger *slog.Logger, repo Repository) *MenusHandler {
	return &MenusHandler{logger: logger, repo: repo}
}

// MountRoutes registers menu routes.
func (h *MenusHandler) MountRoutes(r chi.Router) {
	r.Get("/my-menus", h.myMenus)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type menuRequest struct {
	ParentID  *int64  `json:"parent_id"`
	MenuName  string  `json:"menu_name"`
	URL       *string `json:"url"`
	SortOrder int     `json:"sort_order"`
	IsUse     *bool   `json:"is_use"`
}

// myMenus returns the sidebar entries for the signed-in user. The role is
// re-read from the credential store, not taken from the session snapshot.
func (h *MenusHandler) myMenus(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindUnauthenticated, "Unauthorized"))
		return
	}
	roleID, err := h.repo.CurrentRoleID(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindUnauthenticated, "User not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	items, err := h.repo.NavMenus(r.Context(), roleID)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if items == nil {
		items = []NavItem{}
	}
	shared.JSON(w, http.StatusOK, items)
}

func (h *MenusHandler) list(w http.ResponseWriter, r *http.Request) {
	menus, err := h.repo.ListMenus(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if menus == nil {
		menus = []Menu{}
	}
	shared.JSON(w, http.StatusOK, menus)
}

func (h *MenusHandler) create(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	isUse := true
	if req.IsUse != nil {
		isUse = *req.IsUse
	}
	menu, err := h.repo.CreateMenu(r.Context(), Menu{
		ParentID:  req.ParentID,
		MenuName:  req.MenuName,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		IsUse:     isUse,
	})
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "menu": menu})
}

func (h *MenusHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid menu id"))
		return
	}
	var req menuRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	isUse := true
	if req.IsUse != nil {
		isUse = *req.IsUse
	}
	menu, err := h.repo.UpdateMenu(r.Context(), Menu{
		MenuID:    id,
		ParentID:  req.ParentID,
		MenuName:  req.MenuName,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		IsUse:     isUse,
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Menu not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "menu": menu})
}

func (h *MenusHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid menu id"))
		return
	}
	if err := h.repo.DeleteMenu(r.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Menu not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Menu deleted"})
}
