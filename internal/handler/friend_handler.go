package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accumulator/internal/models"
	"accumulator/internal/roster"
)

type rosterResponse struct {
	Students []models.Friend `json:"students"`
	Teachers []models.Friend `json:"teachers"`
}

// ListFriends godoc
// @Summary Students and teachers of an integration
// @Tags Friends
// @Produce json,html
// @Param integration_id path string true "Integration ID"
// @Success 200 {object} response.Envelope{data=rosterResponse}
// @Router /integrations/{integration_id}/friends [get]
func (h *Handler) ListFriends(c *gin.Context) {
	integrationID := c.Param("integration_id")
	friends, err := h.rosters.Friends(c.Request.Context(), h.backendSession(c), integrationID)
	if err != nil {
		h.fail(c, err)
		return
	}
	students, teachers := roster.Split(friends)

	p := h.newPage(c, "Friends")
	p.IntegrationID = integrationID
	p.Students = students
	p.Teachers = teachers
	h.render(c, http.StatusOK, "friends.html", p, rosterResponse{Students: students, Teachers: teachers})
}

// ListTeachers godoc
// @Summary Teachers of an integration
// @Tags Friends
// @Produce json,html
// @Param integration_id path string true "Integration ID"
// @Success 200 {object} response.Envelope{data=[]models.Friend}
// @Router /integrations/{integration_id}/teachers [get]
func (h *Handler) ListTeachers(c *gin.Context) {
	integrationID := c.Param("integration_id")
	friends, err := h.rosters.Friends(c.Request.Context(), h.backendSession(c), integrationID)
	if err != nil {
		h.fail(c, err)
		return
	}
	_, teachers := roster.Split(friends)

	p := h.newPage(c, "Teachers")
	p.IntegrationID = integrationID
	p.Teachers = teachers
	h.render(c, http.StatusOK, "teachers.html", p, teachers)
}

// RefreshFriends godoc
// @Summary Refresh the roster from the platform
// @Tags Friends
// @Produce json
// @Param integration_id path string true "Integration ID"
// @Success 200 {object} response.Envelope{data=[]models.Friend}
// @Router /integrations/{integration_id}/friends/refresh [post]
func (h *Handler) RefreshFriends(c *gin.Context) {
	integrationID := c.Param("integration_id")
	friends, err := h.rosters.Refresh(c.Request.Context(), h.backendSession(c), integrationID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, friendsPath(integrationID), friends)
}

// PromoteFriend godoc
// @Summary Mark a friend as teacher
// @Tags Friends
// @Param integration_id path string true "Integration ID"
// @Param friend_id path string true "Friend ID"
// @Success 204
// @Router /integrations/{integration_id}/friends/{friend_id}/promote [post]
func (h *Handler) PromoteFriend(c *gin.Context) {
	integrationID := c.Param("integration_id")
	if err := h.rosters.Promote(c.Request.Context(), h.backendSession(c), integrationID, c.Param("friend_id")); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, friendsPath(integrationID), nil)
}

// DemoteFriend godoc
// @Summary Mark a teacher as student
// @Tags Friends
// @Param integration_id path string true "Integration ID"
// @Param friend_id path string true "Friend ID"
// @Success 204
// @Router /integrations/{integration_id}/friends/{friend_id}/demote [post]
func (h *Handler) DemoteFriend(c *gin.Context) {
	integrationID := c.Param("integration_id")
	if err := h.rosters.Demote(c.Request.Context(), h.backendSession(c), integrationID, c.Param("friend_id")); err != nil {
		h.fail(c, err)
		return
	}
	h.done(c, friendsPath(integrationID), nil)
}

func friendsPath(integrationID string) string {
	return "/integrations/" + integrationID + "/friends"
}
