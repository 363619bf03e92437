package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"netmibd/internal/models"
)

const (
	SessionName = "netmibd-session"

	sessionUserID   = "user_id"
	sessionIsAdmin  = "is_admin"
	sessionIssuedAt = "issued_at"
)

type SessionConfig struct {
	Secret string
	// MaxAge is the session lifetime in seconds.
	MaxAge int
	// Secure restricts the cookie to HTTPS.
	Secure bool
}

// Principal is the identity carried by a session cookie.
type Principal struct {
	UserID   int64
	IsAdmin  bool
	IssuedAt time.Time
}

// SessionManager keeps the logged-in user in a signed cookie. Sessions older
// than MaxAge are rejected even if the browser still presents the cookie.
type SessionManager struct {
	store  *sessions.CookieStore
	maxAge time.Duration
	now    func() time.Time
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &SessionManager{
		store:  store,
		maxAge: time.Duration(cfg.MaxAge) * time.Second,
		now:    time.Now,
	}
}

func (m *SessionManager) SetUser(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, err := m.store.Get(r, SessionName)
	if err != nil && session == nil {
		return err
	}

	session.Values[sessionUserID] = user.ID
	session.Values[sessionIsAdmin] = user.IsAdmin
	session.Values[sessionIssuedAt] = m.now().Unix()

	return session.Save(r, w)
}

// Principal returns the session identity, or false when there is no valid,
// unexpired session.
func (m *SessionManager) Principal(r *http.Request) (Principal, bool) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return Principal{}, false
	}

	userID, ok := session.Values[sessionUserID].(int64)
	if !ok {
		return Principal{}, false
	}
	issued, ok := session.Values[sessionIssuedAt].(int64)
	if !ok {
		return Principal{}, false
	}
	p := Principal{
		UserID:   userID,
		IssuedAt: time.Unix(issued, 0),
	}
	p.IsAdmin, _ = session.Values[sessionIsAdmin].(bool)

	if m.maxAge > 0 && m.now().Sub(p.IssuedAt) > m.maxAge {
		return Principal{}, false
	}
	return p, true
}

func (m *SessionManager) GetUserID(r *http.Request) (int64, bool) {
	p, ok := m.Principal(r)
	return p.UserID, ok
}

func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, SessionName)
	if err != nil && session == nil {
		return err
	}

	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1

	return session.Save(r, w)
}
