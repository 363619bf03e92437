package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"netmibd/internal/auth"
	"netmibd/internal/models"
)

type userContextKey struct{}

// ErrorBody is the JSON body of every API error.
type ErrorBody struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Error: msg})
}

type AuthMiddleware struct {
	sessions    *auth.SessionManager
	userService *auth.UserService
}

func NewAuthMiddleware(sessions *auth.SessionManager, userService *auth.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:    sessions,
		userService: userService,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := m.sessions.Principal(r)
		if !ok {
			WriteError(w, r, http.StatusUnauthorized, "login required")
			return
		}

		// The account may have been removed since login.
		user, err := m.userService.GetByID(r.Context(), p.UserID)
		if err != nil {
			_ = m.sessions.Clear(w, r)
			WriteError(w, r, http.StatusUnauthorized, "session expired")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil || !user.IsAdmin {
			WriteError(w, r, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the user stored by RequireAuth, or nil.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey{}).(*models.User)
	return user
}
