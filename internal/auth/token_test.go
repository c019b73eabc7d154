package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/api/admin/auth/check", nil)
	require.NoError(t, err)
	return req
}

func TestExtractToken_BearerHeader(t *testing.T) {
	req := newTokenRequest(t)
	req.Header.Set("Authorization", "Bearer tok3n")
	assert.Equal(t, "tok3n", ExtractToken(req))
}

func TestExtractToken_Cookie(t *testing.T) {
	req := newTokenRequest(t)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "c00kie-tok3n"})
	assert.Equal(t, "c00kie-tok3n", ExtractToken(req))
}

// the bearer header wins over the cookie when both are present - this
// precedence is fixed, changing it silently breaks clients that pin it
func TestExtractToken_HeaderBeatsCookie(t *testing.T) {
	req := newTokenRequest(t)
	req.Header.Set("Authorization", "Bearer header-tok3n")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "c00kie-tok3n"})
	assert.Equal(t, "header-tok3n", ExtractToken(req))
}

func TestExtractToken_Missing(t *testing.T) {
	req := newTokenRequest(t)
	assert.Equal(t, "", ExtractToken(req))

	// non-bearer auth scheme and unrelated cookies do not count
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.AddCookie(&http.Cookie{Name: "other_cookie", Value: "nope"})
	assert.Equal(t, "", ExtractToken(req))
}
