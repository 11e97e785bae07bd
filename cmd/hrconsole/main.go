package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coderslab/hr-console/internal/apikeys"
	"github.com/coderslab/hr-console/internal/app"
	"github.com/coderslab/hr-console/internal/auth"
	"github.com/coderslab/hr-console/internal/departments"
	"github.com/coderslab/hr-console/internal/employees"
	"github.com/coderslab/hr-console/internal/endpoints"
	"github.com/coderslab/hr-console/internal/images"
	"github.com/coderslab/hr-console/internal/observability"
	"github.com/coderslab/hr-console/internal/platform/cache"
	"github.com/coderslab/hr-console/internal/platform/db"
	"github.com/coderslab/hr-console/internal/publicapi"
	"github.com/coderslab/hr-console/internal/rbac"
	"github.com/coderslab/hr-console/internal/shared"
	"github.com/coderslab/hr-console/internal/stats"
	"github.com/coderslab/hr-console/internal/tasks"
	"github.com/coderslab/hr-console/internal/users"
	"github.com/coderslab/hr-console/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionStore := shared.NewRedisSessionStore(redisClient)
	sessionManager := shared.NewSessionManager(sessionStore, "sid", cfg.SessionTTL, cfg.IsProduction())

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	hasher := auth.NewPasswordHasher(auth.StaticSalt)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, hasher)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	rbacRepo := rbac.NewRepository(dbpool)
	pageGate := rbac.PageGate{Repo: rbacRepo, Logger: logger}
	rolesHandler := rbac.NewRolesHandler(logger, rbacRepo)
	menusHandler := rbac.NewMenusHandler(logger, rbacRepo)
	permissionsHandler := rbac.NewPermissionsHandler(logger, rbacRepo)

	keysRepo := apikeys.NewRepository(dbpool)
	keysService := apikeys.NewService(keysRepo)
	keysHandler := apikeys.NewHandler(logger, keysService)
	apiKeyGate := apikeys.Gate{Repo: keysRepo, Logger: logger}

	employeesHandler := employees.NewHandler(logger, employees.NewRepository(dbpool))
	departmentsHandler := departments.NewHandler(logger, departments.NewRepository(dbpool))
	tasksHandler := tasks.NewHandler(logger, tasks.NewRepository(dbpool))
	usersHandler := users.NewHandler(logger, users.NewRepository(dbpool), hasher)
	endpointsHandler := endpoints.NewHandler(logger, endpoints.NewRepository(dbpool))
	imagesHandler := images.NewHandler(logger, images.NewRepository(dbpool))

	statsService := stats.NewService(logger, stats.NewRepository(dbpool), redisClient)
	statsHandler := stats.NewHandler(logger, statsService)

	publicHandler := publicapi.NewHandler(logger, publicapi.NewRepository(dbpool))

	metrics := observability.NewMetrics()
	accessLog := app.NewDailyWriter(cfg.LogDir, "access")

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Templates:          templates,
		SessionManager:     sessionManager,
		AuthHandler:        authHandler,
		EmployeesHandler:   employeesHandler,
		DepartmentsHandler: departmentsHandler,
		TasksHandler:       tasksHandler,
		UsersHandler:       usersHandler,
		RolesHandler:       rolesHandler,
		MenusHandler:       menusHandler,
		PermissionsHandler: permissionsHandler,
		KeysHandler:        keysHandler,
		EndpointsHandler:   endpointsHandler,
		ImagesHandler:      imagesHandler,
		StatsHandler:       statsHandler,
		PublicAPIHandler:   publicHandler,
		PageGate:           pageGate,
		APIKeyGate:         apiKeyGate,
		Metrics:            metrics,
		AccessLog:          accessLog,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
