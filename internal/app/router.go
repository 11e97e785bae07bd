package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coderslab/hr-console/internal/apikeys"
	"github.com/coderslab/hr-console/internal/auth"
	"github.com/coderslab/hr-console/internal/departments"
	"github.com/coderslab/hr-console/internal/employees"
	"github.com/coderslab/hr-console/internal/endpoints"
	"github.com/coderslab/hr-console/internal/images"
	"github.com/coderslab/hr-console/internal/observability"
	"github.com/coderslab/hr-console/internal/publicapi"
	"github.com/coderslab/hr-console/internal/rbac"
	"github.com/coderslab/hr-console/internal/shared"
	"github.com/coderslab/hr-console/internal/stats"
	"github.com/coderslab/hr-console/internal/tasks"
	"github.com/coderslab/hr-console/internal/users"
	"github.com/coderslab/hr-console/internal/view"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager

	AuthHandler        *auth.Handler
	EmployeesHandler   *employees.Handler
	DepartmentsHandler *departments.Handler
	TasksHandler       *tasks.Handler
	UsersHandler       *users.Handler
	RolesHandler       *rbac.RolesHandler
	MenusHandler       *rbac.MenusHandler
	PermissionsHandler *rbac.PermissionsHandler
	KeysHandler        *apikeys.Handler
	EndpointsHandler   *endpoints.Handler
	ImagesHandler      *images.Handler
	StatsHandler       *stats.Handler
	PublicAPIHandler   *publicapi.Handler

	PageGate   rbac.PageGate
	APIKeyGate apikeys.Gate
	Metrics    *observability.Metrics
	AccessLog  io.Writer
}

// NewRouter constructs the chi.Router with all application routes.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		AccessLog:      params.AccessLog,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	requireSession := auth.RequireSession(params.Logger)

	// JSON API, session gated.
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Route("/api/stats", params.StatsHandler.MountRoutes)
		r.Route("/api/employees", params.EmployeesHandler.MountRoutes)
		r.Route("/api/departments", params.DepartmentsHandler.MountRoutes)
		r.Route("/api/tree", params.EmployeesHandler.MountTreeRoutes)
		r.Route("/api/tasks", params.TasksHandler.MountRoutes)
		r.Route("/api/app_users", params.UsersHandler.MountRoutes)
		r.Route("/api/menus", params.MenusHandler.MountRoutes)
		r.Route("/api/roles", params.RolesHandler.MountRoutes)
		r.Route("/api/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/api/keys", params.KeysHandler.MountRoutes)
		r.Route("/api/endpoints", params.EndpointsHandler.MountRoutes)
	})

	// Image serving is open so page shells can reference images directly.
	r.Route("/api/images", params.ImagesHandler.MountRoutes)

	r.Post("/api/logs/client", clientLogHandler(params.Logger))

	// Versioned machine API, key gated.
	r.Group(func(r chi.Router) {
		r.Use(params.APIKeyGate.Require)
		r.Route("/v1", params.PublicAPIHandler.MountRoutes)
	})

	// Pages.
	r.Get("/login.html", params.renderPage("login.html", "Sign in"))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login.html", http.StatusSeeOther)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/dashboard", params.renderPage("dashboard.html", "Dashboard"))
		r.Get("/employees", params.renderPage("page.html", "Employees"))
		r.Get("/departments", params.renderPage("page.html", "Departments"))
		r.Get("/tree", params.renderPage("page.html", "Organization"))
		r.Get("/tasks", params.renderPage("page.html", "Tasks"))
		r.Get("/images", params.renderPage("page.html", "Images"))
		r.Get("/password_change", params.renderPage("page.html", "Change Password"))
	})

	// Administrative pages sit behind the permission gate as well.
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Use(params.PageGate.RequirePagePermission)
		r.Get("/system/menus", params.renderPage("page.html", "Menus"))
		r.Get("/system/roles", params.renderPage("page.html", "Roles"))
		r.Get("/system/permissions", params.renderPage("page.html", "Permissions"))
		r.Get("/app_users", params.renderPage("page.html", "Accounts"))
		r.Get("/api_endpoints", params.renderPage("page.html", "API Endpoints"))
		r.Get("/apikeys", params.renderPage("page.html", "API Keys"))
	})

	return r
}

func (p RouterParams) renderPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var username string
		if principal := shared.PrincipalFromContext(r.Context()); principal != nil {
			username = principal.Username
		}
		data := view.TemplateData{
			Title:       title,
			CurrentPath: r.URL.Path,
			Username:    username,
		}
		if err := p.Templates.Render(w, name, data); err != nil {
			p.Logger.Error("render page", slog.String("template", name), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

type clientLogEntry struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
	Source  string `json:"source"`
	LineNo  int    `json:"lineno"`
	ColNo   int    `json:"colno"`
}

// clientLogHandler forwards browser-side errors into the server error log.
func clientLogHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry clientLogEntry
		if err := shared.DecodeJSON(r, &entry); err != nil {
			shared.WriteError(w, r, logger, err)
			return
		}
		logger.Error("client error",
			slog.String("message", entry.Message),
			slog.String("source", entry.Source),
			slog.Int("line", entry.LineNo),
			slog.Int("col", entry.ColNo),
			slog.String("stack", entry.Stack),
			slog.String("user_agent", r.UserAgent()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Logged"))
	}
}
