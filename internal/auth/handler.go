package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coderslab/hr-console/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/change-password", h.handleChangePassword)
	r.Post("/logout", h.handleLogout)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "Email and Password are required"))
		return
	}

	principal, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInternal, "session unavailable"))
		return
	}
	sess.SetPrincipal(principal)

	shared.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    principal,
	})
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindUnauthenticated, "Not authenticated"))
		return
	}

	var req changePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.WriteError(w, r, h.logger, shared.E(shared.KindInvalid, "All fields are required"))
		return
	}

	if err := h.service.ChangePassword(r.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		shared.WriteError(w, r, h.logger, err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password updated successfully"})
}

// handleLogout destroys the session. Calling it without an active session
// still succeeds.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Destroy(sess)
	}
	shared.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logout successful"})
}
