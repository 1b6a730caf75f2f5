package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accumulator/internal/backend"
	"accumulator/internal/config"
	"accumulator/internal/httpmiddleware"
	"accumulator/internal/models"
)

func testSessions() *Sessions {
	return NewSessions(config.SessionConfig{
		CookieName: "acc",
		Issuer:     "test",
		SigningKey: "secret",
		TTL:        time.Hour,
	})
}

func TestIssueAndParse(t *testing.T) {
	s := testSessions()
	token, exp, err := s.Issue(models.User{ID: 42, Email: "a@b.c", Role: models.RoleAdmin}, "session=up", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, "a@b.c", claims.Email)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, backend.Session{UserID: 42, Cookie: "session=up"}, claims.Backend())
	assert.Empty(t, claims.Impersonator)
}

func TestParseRejectsExpired(t *testing.T) {
	s := testSessions()
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := s.Issue(models.User{ID: 1}, "session=up", "")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsOtherIssuerAndKey(t *testing.T) {
	token, _, err := testSessions().Issue(models.User{ID: 1}, "session=up", "")
	require.NoError(t, err)

	other := NewSessions(config.SessionConfig{CookieName: "acc", Issuer: "elsewhere", SigningKey: "secret"})
	_, err = other.Parse(token)
	assert.Error(t, err)

	wrongKey := NewSessions(config.SessionConfig{CookieName: "acc", Issuer: "test", SigningKey: "nope"})
	_, err = wrongKey.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Upstream: "x", RegisteredClaims: jwt.RegisteredClaims{Issuer: "test", Subject: "1"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testSessions().Parse(token)
	assert.Error(t, err)
}

func TestParseRequiresUpstreamCookie(t *testing.T) {
	s := testSessions()
	token, _, err := s.Issue(models.User{ID: 1}, "", "")
	require.NoError(t, err)
	_, err = s.Parse(token)
	assert.Error(t, err)
}

func newRouter(s *Sessions, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireSession(s)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, claims.Subject+"|"+c.GetString(httpmiddleware.SubjectKey))
	})
	r.GET("/private", handlers...)
	return r
}

func TestRequireSessionRedirectsPages(t *testing.T) {
	r := newRouter(testSessions())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, SignInPath, w.Header().Get("Location"))
}

func TestRequireSessionRejectsAPICallers(t *testing.T) {
	r := newRouter(testSessions())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "acc", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireSessionStoresClaims(t *testing.T) {
	s := testSessions()
	token, _, err := s.Issue(models.User{ID: 7, Email: "u@x.y"}, "session=up", "")
	require.NoError(t, err)
	r := newRouter(s)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "acc", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7|7", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	s := testSessions()
	r := newRouter(s, RequireAdmin())

	user, _, err := s.Issue(models.User{ID: 1, Role: "user"}, "session=up", "")
	require.NoError(t, err)
	admin, _, err := s.Issue(models.User{ID: 2, Role: models.RoleAdmin}, "session=up", "")
	require.NoError(t, err)

	cases := map[string]int{user: http.StatusForbidden, admin: http.StatusOK}
	for token, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "acc", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}
