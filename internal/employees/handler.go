package employees

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes employee CRUD and the org tree.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validate: validator.New()}
}

// MountRoutes registers employee routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// MountTreeRoutes registers org tree routes.
func (h *Handler) MountTreeRoutes(r chi.Router) {
	r.Get("/", h.tree)
	r.Post("/move", h.move)
	r.Get("/stats/salary/{empno}", h.salaryStats)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Full dataset for client-side faceted filtering.
	if q.Get("all") == "true" {
		all, err := h.repo.ListAll(r.Context())
		if err != nil {
			shared.WriteError(w, r, h.logger, err)
			return
		}
		if all == nil {
			all = []Employee{}
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
	params := ListParams{
		Page:      page,
		Limit:     limit,
		SortField: strings.ToLower(q.Get("sortField")),
		SortDesc:  strings.EqualFold(q.Get("sortOrder"), "desc"),
	}

	list, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if list == nil {
		list = []Employee{}
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"data":  list,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in EmployeeInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Name is required"))
		return
	}
	emp, err := h.repo.Create(r.Context(), in)
	if err != nil {
		if shared.IsForeignKeyViolation(err) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Referenced manager or department does not exist"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "employee": emp})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid employee id"))
		return
	}
	var in EmployeeInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	emp, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Employee not found"))
			return
		}
		if shared.IsForeignKeyViolation(err) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Referenced manager or department does not exist"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "employee": emp})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid employee id"))
		return
	}
	emp, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Employee not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Employee deleted", "employee": emp})
}

func (h *Handler) tree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.repo.Tree(r.Context())
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if nodes == nil {
		nodes = []TreeNode{}
	}
	shared.JSON(w, http.StatusOK, nodes)
}

type moveRequest struct {
	EmpNos    []int64 `json:"empnos"`
	TargetMgr *int64  `json:"targetMgr"`
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if len(req.EmpNos) == 0 {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "No employees selected"))
		return
	}
	if err := h.repo.Move(r.Context(), req.EmpNos, req.TargetMgr); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Updated " + strconv.Itoa(len(req.EmpNos)) + " employees",
	})
}

func (h *Handler) salaryStats(w http.ResponseWriter, r *http.Request) {
	empNo, err := strconv.ParseInt(chi.URLParam(r, "empno"), 10, 64)
	if err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Invalid employee id"))
		return
	}
	stats, err := h.repo.SalaryStats(r.Context(), empNo)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.WriteError(w, r, h.logger, shared.E(shared.KindNotFound, "Employee not found"))
			return
		}
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if stats.Data == nil {
		stats.Data = []SalaryEntry{}
	}
	shared.JSON(w, http.StatusOK, stats)
}
