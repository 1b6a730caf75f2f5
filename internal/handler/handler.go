package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"accumulator/internal/apperrors"
	"accumulator/internal/attendance"
	"accumulator/internal/auth"
	"accumulator/internal/backend"
	"accumulator/internal/models"
	"accumulator/internal/response"
)

// Accounts covers sign in and user administration on the backend.
type Accounts interface {
	SignIn(ctx context.Context, email, password string) (backend.Session, models.User, error)
	SignUp(ctx context.Context, email, password string) (backend.Session, models.User, error)
	SignOut(ctx context.Context, sess backend.Session) error
	ListUsers(ctx context.Context, sess backend.Session) ([]models.User, error)
	Impersonate(ctx context.Context, sess backend.Session, userID string) (backend.Session, models.User, error)
}

// Integrations lists and links external accounts.
type Integrations interface {
	ListIntegrations(ctx context.Context, sess backend.Session) ([]models.Integration, error)
	AddIntegration(ctx context.Context, sess backend.Session, username, password string) error
}

// Rosters serves friend lists and the mutations on them.
type Rosters interface {
	Friends(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
	Refresh(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
	UpdateFriends(ctx context.Context, sess backend.Session, integrationID string) error
	Promote(ctx context.Context, sess backend.Session, integrationID, friendID string) error
	Demote(ctx context.Context, sess backend.Session, integrationID, friendID string) error
	DeleteIntegration(ctx context.Context, sess backend.Session, integrationID string) error
}

// AttendanceViewer builds the attendance of one teacher.
type AttendanceViewer interface {
	View(ctx context.Context, sess backend.Session, integrationID, teacherID string) (attendance.View, error)
}

// Probe reports the health of a dependency.
type Probe func(ctx context.Context) error

// Deps are the collaborators of the handlers.
type Deps struct {
	Accounts     Accounts
	Integrations Integrations
	Rosters      Rosters
	Attendance   AttendanceViewer
	Sessions     *auth.Sessions
	Probes       map[string]Probe
	Logger       *zap.Logger
}

// Handler serves the gateway pages and their JSON equivalents.
type Handler struct {
	accounts     Accounts
	integrations Integrations
	rosters      Rosters
	attendance   AttendanceViewer
	sessions     *auth.Sessions
	probes       map[string]Probe
	logger       *zap.Logger
}

// New constructs the handler.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		accounts:     d.Accounts,
		integrations: d.Integrations,
		rosters:      d.Rosters,
		attendance:   d.Attendance,
		sessions:     d.Sessions,
		probes:       d.Probes,
		logger:       logger,
	}
}

// page is the data every template receives.
type page struct {
	Title         string
	Session       *auth.Claims
	Error         string
	Email         string
	IntegrationID string
	Integrations  []models.Integration
	Students      []models.Friend
	Teachers      []models.Friend
	View          *attendance.View
	Users         []models.User
}

func (h *Handler) newPage(c *gin.Context, title string) page {
	p := page{Title: title}
	if claims, ok := auth.ClaimsFrom(c); ok {
		p.Session = &claims
	}
	return p
}

// render answers with the named template or with data in the JSON envelope.
func (h *Handler) render(c *gin.Context, status int, name string, p page, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: name,
		HTMLData: p,
		JSONData: response.Envelope{Data: data},
	})
}

// done finishes a form action: pages are redirected, API callers get data.
func (h *Handler) done(c *gin.Context, redirect string, data interface{}) {
	if response.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}
	if data == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// fail reports err. An expired backend session ends the gateway session too.
func (h *Handler) fail(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	_ = c.Error(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(err))
	}
	if appErr.Code == apperrors.ErrUnauthorized.Code {
		auth.Unauthorized(c, h.sessions)
		return
	}
	if !response.WantsHTML(c) {
		response.Error(c, appErr)
		return
	}
	p := h.newPage(c, appErr.Message)
	c.HTML(appErr.Status, auth.ErrorTemplate, p)
}

func (h *Handler) backendSession(c *gin.Context) backend.Session {
	claims, _ := auth.ClaimsFrom(c)
	return claims.Backend()
}
