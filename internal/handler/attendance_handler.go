package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"accumulator/internal/apperrors"
	"accumulator/internal/export"
)

// ShowAttendance godoc
// @Summary Attendance of a teacher
// @Description Records grouped by student, most recent first. Records outside the teacher and integration of the route are not listed.
// @Tags Attendance
// @Produce json,html
// @Param integration_id path string true "Integration ID"
// @Param teacher_id path string true "Teacher friend ID"
// @Success 200 {object} response.Envelope{data=attendance.View}
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /integrations/{integration_id}/attendance/{teacher_id} [get]
func (h *Handler) ShowAttendance(c *gin.Context) {
	view, err := h.attendance.View(c.Request.Context(), h.backendSession(c), c.Param("integration_id"), c.Param("teacher_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	p := h.newPage(c, view.Teacher.VrchatDisplayName)
	p.IntegrationID = view.IntegrationID
	p.View = &view
	h.render(c, http.StatusOK, "attendance.html", p, view)
}

// ExportAttendance godoc
// @Summary Download the attendance of a teacher
// @Tags Attendance
// @Produce text/csv,application/pdf
// @Param integration_id path string true "Integration ID"
// @Param teacher_id path string true "Teacher friend ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /integrations/{integration_id}/attendance/{teacher_id}/export [get]
func (h *Handler) ExportAttendance(c *gin.Context) {
	format := c.DefaultQuery("format", export.FormatCSV)
	if !export.Supported(format) {
		h.fail(c, apperrors.Clone(apperrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	view, err := h.attendance.View(c.Request.Context(), h.backendSession(c), c.Param("integration_id"), c.Param("teacher_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	file, err := export.Render(format, view)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
