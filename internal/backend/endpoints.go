package backend

import (
	"context"
	"net/http"

	"accumulator/internal/apperrors"
	"accumulator/internal/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn authenticates against the backend and returns the session it set
// along with the signed-in user.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, models.User, error) {
	return c.authenticate(ctx, "auth.sign_in", "/auth/sign_in", credentials{Email: email, Password: password})
}

// SignUp registers a new account; the backend signs the user in on success.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, models.User, error) {
	return c.authenticate(ctx, "auth.sign_up", "/auth/sign_up", credentials{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, op, path string, creds credentials) (Session, models.User, error) {
	cookies, err := c.do(ctx, call{op: op, method: http.MethodPost, path: path, body: creds})
	if err != nil {
		return Session{}, models.User{}, err
	}
	cookie := cookieHeader(cookies)
	if cookie == "" {
		return Session{}, models.User{}, apperrors.Clone(apperrors.ErrUnauthorized, "backend did not start a session")
	}
	return c.resolve(ctx, Session{Cookie: cookie})
}

// resolve fills in the session's user id from the backend.
func (c *Client) resolve(ctx context.Context, sess Session) (Session, models.User, error) {
	user, err := c.Check(ctx, sess)
	if err != nil {
		return Session{}, models.User{}, err
	}
	sess.UserID = user.ID
	return sess, user, nil
}

// SignOut destroys the backend session.
func (c *Client) SignOut(ctx context.Context, sess Session) error {
	_, err := c.do(ctx, call{op: "auth.sign_out", method: http.MethodPost, path: "/auth/sign_out", session: &sess})
	return err
}

// Check returns the user the session belongs to.
func (c *Client) Check(ctx context.Context, sess Session) (models.User, error) {
	var w userWire
	cl := call{op: "auth.check", method: http.MethodGet, path: "/auth/check", session: &sess, out: &w}
	cl.convert = func() error { return c.check(cl.op, &w) }
	if _, err := c.do(ctx, cl); err != nil {
		return models.User{}, err
	}
	return w.model(), nil
}

// ListUsers lists all accounts. Admin only on the backend side.
func (c *Client) ListUsers(ctx context.Context, sess Session) ([]models.User, error) {
	return list[userWire, models.User](ctx, c, call{op: "users.list", method: http.MethodGet, path: "/users/list", session: &sess})
}

// Impersonate switches the backend session to another user and returns the
// new session and the user it belongs to.
func (c *Client) Impersonate(ctx context.Context, sess Session, userID string) (Session, models.User, error) {
	id, err := pathID("user id", userID)
	if err != nil {
		return Session{}, models.User{}, err
	}
	cookies, err := c.do(ctx, call{op: "users.impersonate", method: http.MethodPost, path: "/users/impersonate/" + id, session: &sess})
	if err != nil {
		return Session{}, models.User{}, err
	}
	next := Session{Cookie: cookieHeader(cookies)}
	if next.Cookie == "" {
		return Session{}, models.User{}, apperrors.Clone(apperrors.ErrRequestFailed, "backend did not switch the session")
	}
	return c.resolve(ctx, next)
}

// ListIntegrations lists the signed-in user's integrations.
func (c *Client) ListIntegrations(ctx context.Context, sess Session) ([]models.Integration, error) {
	return list[integrationWire, models.Integration](ctx, c, call{op: "integrations.list", method: http.MethodGet, path: "/integrations/list", session: &sess})
}

// AddIntegration links an external account by username and password.
func (c *Client) AddIntegration(ctx context.Context, sess Session, username, password string) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	_, err := c.do(ctx, call{op: "integrations.add_username", method: http.MethodPost, path: "/integrations/add_username", session: &sess, body: body})
	return err
}

// UpdateFriends asks the backend to re-pull the integration's friends list.
func (c *Client) UpdateFriends(ctx context.Context, sess Session, integrationID string) error {
	id, err := pathID("integration id", integrationID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{op: "integrations.update_friends", method: http.MethodPost, path: "/integrations/" + id + "/update_friends", session: &sess})
	return err
}

// DeleteIntegration removes an integration.
func (c *Client) DeleteIntegration(ctx context.Context, sess Session, integrationID string) error {
	id, err := pathID("integration id", integrationID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{op: "integrations.delete", method: http.MethodPost, path: "/integrations/" + id + "/delete", session: &sess})
	return err
}

// ListFriends returns the integration's roster.
func (c *Client) ListFriends(ctx context.Context, sess Session, integrationID string) ([]models.Friend, error) {
	return c.friends(ctx, sess, integrationID, "friends.list", http.MethodGet, "/friends/list")
}

// RefreshFriends refreshes the roster from the platform and returns it.
func (c *Client) RefreshFriends(ctx context.Context, sess Session, integrationID string) ([]models.Friend, error) {
	return c.friends(ctx, sess, integrationID, "friends.refresh", http.MethodPost, "/friends/refresh")
}

func (c *Client) friends(ctx context.Context, sess Session, integrationID, op, method, suffix string) ([]models.Friend, error) {
	id, err := pathID("integration id", integrationID)
	if err != nil {
		return nil, err
	}
	return list[friendWire, models.Friend](ctx, c, call{op: op, method: method, path: "/integrations/" + id + suffix, session: &sess})
}

// Promote marks a friend as a teacher.
func (c *Client) Promote(ctx context.Context, sess Session, integrationID, friendID string) error {
	return c.setRole(ctx, sess, integrationID, friendID, "friends.promote", "/promote")
}

// Demote marks a teacher as a student.
func (c *Client) Demote(ctx context.Context, sess Session, integrationID, friendID string) error {
	return c.setRole(ctx, sess, integrationID, friendID, "friends.demote", "/demote")
}

func (c *Client) setRole(ctx context.Context, sess Session, integrationID, friendID, op, suffix string) error {
	iid, err := pathID("integration id", integrationID)
	if err != nil {
		return err
	}
	fid, err := pathID("friend id", friendID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{op: op, method: http.MethodPost, path: "/integrations/" + iid + "/friends/" + fid + suffix, session: &sess})
	return err
}

// ListAttendance returns the raw attendance recorded under a teacher.
func (c *Client) ListAttendance(ctx context.Context, sess Session, integrationID, teacherID string) ([]models.AttendanceRecord, error) {
	iid, err := pathID("integration id", integrationID)
	if err != nil {
		return nil, err
	}
	tid, err := pathID("teacher id", teacherID)
	if err != nil {
		return nil, err
	}
	path := "/integrations/" + iid + "/attendance/" + tid + "/list"
	return list[attendanceWire, models.AttendanceRecord](ctx, c, call{op: "attendance.list", method: http.MethodGet, path: path, session: &sess})
}
