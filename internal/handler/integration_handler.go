package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accumulator/internal/apperrors"
)

type integrationForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ListIntegrations godoc
// @Summary List integrations
// @Description Home page. Lists the linked accounts of the signed-in user.
// @Tags Integrations
// @Produce json,html
// @Success 200 {object} response.Envelope{data=[]models.Integration}
// @Failure 401 {object} response.Envelope
// @Router / [get]
func (h *Handler) ListIntegrations(c *gin.Context) {
	integrations, err := h.integrations.ListIntegrations(c.Request.Context(), h.backendSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	p := h.newPage(c, "Integrations")
	p.Integrations = integrations
	h.render(c, http.StatusOK, "integrations.html", p, integrations)
}

// AddIntegration godoc
// @Summary Link an integration
// @Tags Integrations
// @Accept json
// @Param payload body integrationForm true "Platform credentials"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /integrations [post]
func (h *Handler) AddIntegration(c *gin.Context) {
	var form integrationForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, apperrors.Clone(apperrors.ErrValidation, "username and password are required"))
		return
	}
	if err := h.integrations.AddIntegration(c.Request.Context(), h.backendSession(c), form.Username, form.Password); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, "/", nil)
}

// UpdateFriends godoc
// @Summary Re-pull an integration's friends
// @Tags Integrations
// @Param integration_id path string true "Integration ID"
// @Success 204
// @Router /integrations/{integration_id}/update_friends [post]
func (h *Handler) UpdateFriends(c *gin.Context) {
	if err := h.rosters.UpdateFriends(c.Request.Context(), h.backendSession(c), c.Param("integration_id")); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, "/", nil)
}

// DeleteIntegration godoc
// @Summary Delete an integration
// @Tags Integrations
// @Param integration_id path string true "Integration ID"
// @Success 204
// @Router /integrations/{integration_id}/delete [post]
func (h *Handler) DeleteIntegration(c *gin.Context) {
	if err := h.rosters.DeleteIntegration(c.Request.Context(), h.backendSession(c), c.Param("integration_id")); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, "/", nil)
}
