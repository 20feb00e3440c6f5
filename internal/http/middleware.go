package http

import (
	"context"
	"net/http"

	"github.com/krishnendude2005/vibe-cart-demo/internal/session"
)

// SessionCookieName is the browser-side counterpart of the durable storage
// key used by the file provider.
const SessionCookieName = "cart_session_id"

// sessionCookieMaxAge keeps the cookie effectively permanent; the token
// never expires and never rotates.
const sessionCookieMaxAge = 10 * 365 * 24 * 60 * 60

// SessionMiddleware derives or creates the session token for the request
// and stores it in the context. The token correlates a browser with its
// cart rows; it is not authentication.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			token = cookie.Value
		} else {
			token = session.NewToken()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), "session_id", token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value("session_id").(string); ok {
		return sessionID
	}
	return ""
}
