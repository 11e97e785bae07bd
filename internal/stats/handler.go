package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler exposes dashboard aggregates.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers stat routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/total_employee", serve(h, (*Service).TotalEmployees))
	r.Get("/total_dept", serve(h, (*Service).TotalDepartments))
	r.Get("/avg_sal", serve(h, (*Service).AverageSalary))
	r.Get("/dept-emp", serveList(h, (*Service).EmployeesPerDept))
	r.Get("/job-emp", serveList(h, (*Service).EmployeesPerJob))
	r.Get("/dept-sal", serveList(h, (*Service).SalaryPerDept))
	r.Get("/job-sal", serveList(h, (*Service).SalaryPerJob))
}

func serve[T any](h *Handler, fetch func(*Service, context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(h.service, r.Context())
		if err != nil {
			shared.WriteError(w, r, h.logger, err)
			return
		}
		shared.JSON(w, http.StatusOK, v)
	}
}

func serveList[T any](h *Handler, fetch func(*Service, context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(h.service, r.Context())
		if err != nil {
			shared.WriteError(w, r, h.logger, err)
			return
		}
		if v == nil {
			v = []T{}
		}
		shared.JSON(w, http.StatusOK, v)
	}
}
