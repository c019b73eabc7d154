package auth

import (
	"net/http"
	"strings"
)

const (
	// SessionCookieName is the cookie carrying the admin session token
	SessionCookieName = "admin_session"

	bearerPrefix = "Bearer "
)

// ExtractToken finds a candidate session token in the request: the
// Authorization bearer header wins, the session cookie is the fallback.
// Returns "" when neither is present. No validity check happens here -
// that is the session service's job.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
