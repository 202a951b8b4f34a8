package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-web/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSession_IssuesAndKeepsID(t *testing.T) {
	store := NewSessionStore(utils.SessionConfig{MaxAge: 60}, []byte("0123456789abcdef0123456789abcdef"))

	var seen []string
	handler := Session(store, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, ok := utils.GetSessionIDFromContext(r.Context())
		assert.True(t, ok)
		seen = append(seen, sid)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, seen[0], seen[1])
	assert.Empty(t, rec.Result().Cookies(), "an existing session is not rewritten")
}

func TestSession_TamperedCookieStartsOver(t *testing.T) {
	store := NewSessionStore(utils.SessionConfig{MaxAge: 60}, []byte("0123456789abcdef0123456789abcdef"))

	var sid string
	handler := Session(store, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, _ = utils.GetSessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, sid)
	assert.Len(t, rec.Result().Cookies(), 1)
}
