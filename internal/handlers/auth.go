package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"netmibd/internal/auth"
	"netmibd/internal/middleware"
	"netmibd/internal/models"
)

type AuthHandler struct {
	sessions    *auth.SessionManager
	userService *auth.UserService
	log         *slog.Logger
}

func NewAuthHandler(sessions *auth.SessionManager, userService *auth.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:    sessions,
		userService: userService,
		log:         log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.WriteError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) && !errors.Is(err, auth.ErrInvalidPassword) {
			h.log.Error("authentication failed", "username", req.Username, "error", err)
		}
		h.audit(r, models.AuditLog{Action: auth.ActionLoginFailed, Object: req.Username})
		middleware.WriteError(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := h.sessions.SetUser(w, r, user); err != nil {
		h.log.Error("failed to create session", "error", err)
		middleware.WriteError(w, r, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.audit(r, models.AuditLog{UserID: &user.ID, Action: auth.ActionLoginSuccess})
	render.JSON(w, r, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if userID, ok := h.sessions.GetUserID(r); ok {
		h.audit(r, models.AuditLog{UserID: &userID, Action: auth.ActionLogout})
	}

	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Warn("failed to clear session", "error", err)
	}
	render.NoContent(w, r)
}

func (h *AuthHandler) audit(r *http.Request, entry models.AuditLog) {
	entry.IPAddress = getClientIP(r)
	if err := h.userService.LogAction(r.Context(), entry); err != nil {
		h.log.Warn("failed to write audit log", "action", entry.Action, "error", err)
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
