package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookieName = "user_session"
	sessionLifetime   = 30 * 24 * time.Hour
)

type sessionKey struct{}

// withSession - attaches the session id from the user_session cookie, issuing a new one
// when the cookie is missing or is not a UUID.
func (that *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if _, err = uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/game",
				Expires:  time.Now().Add(sessionLifetime),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			that.logger.Debug("session cookie not found, new one created", "sessionID", sessionID)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID)))
	})
}

func sessionFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionKey{}).(string)
	return sessionID
}
