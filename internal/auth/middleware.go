package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"accumulator/internal/apperrors"
	"accumulator/internal/httpmiddleware"
	"accumulator/internal/response"
)

// ContextClaimsKey is the gin context key storing the session claims.
const ContextClaimsKey = "claims"

// SignInPath is where unauthenticated page requests are sent.
const SignInPath = "/signin"

// ErrorTemplate is the page rendered for failed page requests.
const ErrorTemplate = "error.html"

// SetCookie stores a signed session on the response.
func (s *Sessions) SetCookie(c *gin.Context, token string, exp time.Time) {
	maxAge := int(time.Until(exp).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, token, maxAge, "/", "", gin.Mode() == gin.ReleaseMode, true)
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, "", -1, "/", "", gin.Mode() == gin.ReleaseMode, true)
}

// Current parses the session cookie of the request, if any.
func (s *Sessions) Current(c *gin.Context) (Claims, bool) {
	token, err := c.Cookie(s.cfg.CookieName)
	if err != nil || token == "" {
		return Claims{}, false
	}
	claims, err := s.Parse(token)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// RequireSession rejects requests without a valid session cookie. Page
// requests are redirected to the sign in page, API callers get a 401.
func RequireSession(s *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.Current(c)
		if !ok {
			Unauthorized(c, s)
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Set(httpmiddleware.SubjectKey, claims.Subject)
		c.Next()
	}
}

// RequireAdmin allows only admin sessions. It must run after RequireSession.
// Page requests get the error page, API callers the JSON envelope.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			if response.WantsHTML(c) {
				c.Redirect(http.StatusSeeOther, SignInPath)
			} else {
				response.Error(c, apperrors.ErrUnauthorized)
			}
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			if response.WantsHTML(c) {
				c.HTML(http.StatusForbidden, ErrorTemplate, gin.H{
					"Title":   "Admins only",
					"Session": &claims,
				})
			} else {
				response.Error(c, apperrors.ErrForbidden)
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// Unauthorized drops the session and answers the way the caller expects.
func Unauthorized(c *gin.Context, s *Sessions) {
	s.ClearCookie(c)
	if response.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, SignInPath)
		c.Abort()
		return
	}
	response.Error(c, apperrors.ErrUnauthorized)
	c.Abort()
}

// ClaimsFrom returns the claims stored by RequireSession.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}
