package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accumulator/internal/auth"
)

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json,html
// @Success 200 {object} response.Envelope{data=[]models.User}
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context(), h.backendSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	p := h.newPage(c, "Users")
	p.Users = users
	h.render(c, http.StatusOK, "users.html", p, users)
}

// Impersonate godoc
// @Summary Act as another user
// @Description Switches the session to the given user. The admin's email is kept on the session.
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 403 {object} response.Envelope
// @Router /users/{user_id}/impersonate [post]
func (h *Handler) Impersonate(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	sess, user, err := h.accounts.Impersonate(c.Request.Context(), claims.Backend(), c.Param("user_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	impersonator := claims.Impersonator
	if impersonator == "" {
		impersonator = claims.Email
	}
	if err := h.startSession(c, user, sess.Cookie, impersonator); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, "/", user)
}
