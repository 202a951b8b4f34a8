package middleware

import (
	"net/http"

	"catalog-web/pkg/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionName  = "catalog-session"
	sessionIDKey = "sid"
)

// NewSessionStore builds the cookie store that carries the browser session id
// and one-shot flash banners.
func NewSessionStore(config utils.SessionConfig, secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   config.MaxAge,
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session makes sure every request carries a session id, issuing a new one
// when the cookie is missing or cannot be decoded.
func Session(store sessions.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				// Tampered or stale cookie (e.g. rotated secret): start over.
				logger.Debug("Discarding unreadable session cookie", zap.Error(err))
			}

			sessionID, _ := session.Values[sessionIDKey].(string)
			if sessionID == "" {
				sessionID = utils.GenerateUUIDString()
				session.Values[sessionIDKey] = sessionID
				if err := session.Save(r, w); err != nil {
					logger.Error("Failed to save session", zap.Error(err))
					utils.ResponseInternalError(w, "Failed to start session")
					return
				}
			}

			ctx := utils.SetSessionContext(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
