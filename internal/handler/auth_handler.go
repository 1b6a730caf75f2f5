package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accumulator/internal/apperrors"
	"accumulator/internal/auth"
	"accumulator/internal/backend"
	"accumulator/internal/models"
	"accumulator/internal/response"
)

type credentialsForm struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SignInPage shows the sign in form.
func (h *Handler) SignInPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.html", h.newPage(c, "Sign in"))
}

// SignUpPage shows the registration form.
func (h *Handler) SignUpPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", h.newPage(c, "Sign up"))
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticates against the backend and starts a gateway session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body credentialsForm true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /signin [post]
func (h *Handler) SignIn(c *gin.Context) {
	h.authenticate(c, "signin.html", "Sign in", h.accounts.SignIn)
}

// SignUp godoc
// @Summary Sign up
// @Description Registers an account and starts a gateway session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body credentialsForm true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	h.authenticate(c, "signup.html", "Sign up", h.accounts.SignUp)
}

type authenticator func(ctx context.Context, email, password string) (backend.Session, models.User, error)

// authenticate runs a credential exchange. Failures re-render the form
// instead of redirecting so the message stays visible.
func (h *Handler) authenticate(c *gin.Context, tmpl, title string, fn authenticator) {
	var form credentialsForm
	err := c.ShouldBind(&form)
	if err != nil {
		err = apperrors.Clone(apperrors.ErrValidation, "a valid email and a password are required")
	} else {
		var (
			sess backend.Session
			user models.User
		)
		sess, user, err = fn(c.Request.Context(), form.Email, form.Password)
		if err == nil {
			err = h.startSession(c, user, sess.Cookie, "")
		}
		if err == nil {
			h.done(c, "/", user)
			return
		}
	}

	appErr := apperrors.FromError(err)
	if !response.WantsHTML(c) {
		response.Error(c, appErr)
		return
	}
	p := h.newPage(c, title)
	p.Error = appErr.Message
	p.Email = form.Email
	c.HTML(appErr.Status, tmpl, p)
}

func (h *Handler) startSession(c *gin.Context, user models.User, upstream, impersonator string) error {
	token, exp, err := h.sessions.Issue(user, upstream, impersonator)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not start session")
	}
	h.sessions.SetCookie(c, token, exp)
	return nil
}

// SignOut godoc
// @Summary Sign out
// @Tags Auth
// @Success 204
// @Router /signout [post]
func (h *Handler) SignOut(c *gin.Context) {
	if claims, ok := h.sessions.Current(c); ok {
		if err := h.accounts.SignOut(c.Request.Context(), claims.Backend()); err != nil {
			h.logger.Warn("backend sign out failed", zap.String("subject", claims.Subject), zap.Error(err))
		}
	}
	h.sessions.ClearCookie(c)
	h.done(c, auth.SignInPath, nil)
}
