package backend

import (
	"context"

	"accumulator/internal/models"
)

// Wire types mirror the backend JSON. Required fields are pointers so that a
// missing key and a zero value can be told apart during validation.

type attendanceWire struct {
	Location      *string `json:"location" validate:"required"`
	IntegrationID *int64  `json:"integration_id" validate:"required"`
	TeacherID     *int64  `json:"teacher_id" validate:"required"`
	FriendID      *int64  `json:"friend_id" validate:"required"`
	Timestamp     *int64  `json:"timestamp" validate:"required"`
}

func (w attendanceWire) model() models.AttendanceRecord {
	return models.AttendanceRecord{
		Location:      *w.Location,
		IntegrationID: *w.IntegrationID,
		TeacherID:     *w.TeacherID,
		FriendID:      *w.FriendID,
		Timestamp:     *w.Timestamp,
	}
}

type friendWire struct {
	ID                            *int64  `json:"id" validate:"required"`
	IntegrationID                 int64   `json:"integration_id"`
	IsTeacher                     *bool   `json:"is_teacher" validate:"required"`
	VrchatID                      string  `json:"vrchat_id"`
	VrchatUsername                string  `json:"vrchat_username"`
	VrchatDisplayName             *string `json:"vrchat_display_name" validate:"required"`
	VrchatAvatarImageURL          string  `json:"vrchat_avatar_image_url"`
	VrchatAvatarThumbnailImageURL string  `json:"vrchat_avatar_thumbnail_image_url"`
	VrchatLocation                string  `json:"vrchat_location"`
}

func (w friendWire) model() models.Friend {
	return models.Friend{
		ID:                            *w.ID,
		IntegrationID:                 w.IntegrationID,
		IsTeacher:                     *w.IsTeacher,
		VrchatID:                      w.VrchatID,
		VrchatUsername:                w.VrchatUsername,
		VrchatDisplayName:             *w.VrchatDisplayName,
		VrchatAvatarImageURL:          w.VrchatAvatarImageURL,
		VrchatAvatarThumbnailImageURL: w.VrchatAvatarThumbnailImageURL,
		VrchatLocation:                w.VrchatLocation,
	}
}

type integrationWire struct {
	ID       *int64 `json:"id" validate:"required"`
	Username string `json:"username"`
}

func (w integrationWire) model() models.Integration {
	return models.Integration{ID: *w.ID, Username: w.Username}
}

type userWire struct {
	ID    *int64  `json:"id" validate:"required"`
	Email *string `json:"email" validate:"required"`
	Role  string  `json:"role"`
}

func (w userWire) model() models.User {
	return models.User{ID: *w.ID, Email: *w.Email, Role: w.Role}
}

type modeler[T any] interface {
	model() T
}

// convertAll validates every wire element and converts it. A null list
// decodes to an empty one.
func convertAll[W modeler[T], T any](c *Client, op string, in []W) ([]T, error) {
	out := make([]T, 0, len(in))
	for i := range in {
		if err := c.check(op, &in[i]); err != nil {
			return nil, err
		}
		out = append(out, in[i].model())
	}
	return out, nil
}

// list performs cl and returns its validated {data} list.
func list[W modeler[T], T any](ctx context.Context, c *Client, cl call) ([]T, error) {
	var ws []W
	var out []T
	cl.out = &ws
	cl.convert = func() (err error) {
		out, err = convertAll[W, T](c, cl.op, ws)
		return err
	}
	if _, err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return out, nil
}
