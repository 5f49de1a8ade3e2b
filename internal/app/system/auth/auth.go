// Package auth is the session/auth gateway: it authenticates a request to a
// user identity and hands that identity to handlers through the request
// context. Two credentials are accepted for the same identity: the HTTP-only
// session cookie set at login, and a bearer token issued alongside it for
// clients that do not keep cookies.
//
// Core operations never see a request or a token; they take the resolved
// actor id as an explicit parameter.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
)

// SessionUser is the identity cached in the session and injected into
// r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager owns the cookie store and the token issuer, and provides
// the middleware that resolves a request to a SessionUser.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	tokens *TokenIssuer
	log    *zap.Logger
}

// NewSessionManager builds the cookie store. The secure flag controls the
// Secure attribute and SameSite mode: production uses Secure + None so the
// cookie works cross-site over HTTPS; dev over plain http uses Lax.
func NewSessionManager(sessionKey, cookieName, domain string, secure bool, tokens *TokenIssuer, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: cookieName, tokens: tokens, log: logger}, nil
}

// CurrentUser returns the authenticated user from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// IssueSession writes the user into the session cookie.
func (sm *SessionManager) IssueSession(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	return sess.Save(r, w)
}

// ClearSession expires the session cookie.
func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if the request carries a
// valid session cookie or a valid bearer token. Requests with neither pass
// through unauthenticated; RequireSignedIn decides what that means per
// route.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := sm.userFromCookie(r); u != nil {
			next.ServeHTTP(w, withUser(r, u))
			return
		}
		if u := sm.userFromBearer(r); u != nil {
			next.ServeHTTP(w, withUser(r, u))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects unauthenticated requests with a JSON 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authentication required"}`))
	})
}

func (sm *SessionManager) userFromCookie(r *http.Request) *SessionUser {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		// A cookie signed with a rotated key fails to decode; treat it
		// as signed out rather than an error.
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			return nil
		}
		sm.log.Warn("session read failed", zap.Error(err))
		return nil
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil
	}
	u := &SessionUser{
		ID:    getString(sess, userIDKey),
		Name:  getString(sess, userNameKey),
		Email: getString(sess, userEmailKey),
	}
	if u.ID == "" {
		return nil
	}
	return u
}

func (sm *SessionManager) userFromBearer(r *http.Request) *SessionUser {
	if sm.tokens == nil {
		return nil
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}
	u, err := sm.tokens.Parse(parts[1])
	if err != nil {
		return nil
	}
	return u
}

// WithTestUser injects a user into the request context directly, bypassing
// the session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
