package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const SessionCookieName = "conn4_session"

// SetSessionCookie stores the session token. Secure cookies need HTTPS, so
// they are only turned on in production.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, cookie)
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest reads the session cookie, falling back to an
// Authorization header for clients that cannot send cookies.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("no session token in cookie or header")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}
