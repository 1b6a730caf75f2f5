package models

import "strconv"

// RoleAdmin gates user administration.
const RoleAdmin = "admin"

// AttendanceRecord is one observed presence of a student under a teacher.
type AttendanceRecord struct {
	Location      string `json:"location"`
	IntegrationID int64  `json:"integration_id"`
	TeacherID     int64  `json:"teacher_id"`
	FriendID      int64  `json:"friend_id"`
	Timestamp     int64  `json:"timestamp"`
}

// Friend is a roster entry under an integration.
type Friend struct {
	ID                            int64  `json:"id"`
	IntegrationID                 int64  `json:"integration_id,omitempty"`
	IsTeacher                     bool   `json:"is_teacher"`
	VrchatID                      string `json:"vrchat_id,omitempty"`
	VrchatUsername                string `json:"vrchat_username,omitempty"`
	VrchatDisplayName             string `json:"vrchat_display_name"`
	VrchatAvatarImageURL          string `json:"vrchat_avatar_image_url,omitempty"`
	VrchatAvatarThumbnailImageURL string `json:"vrchat_avatar_thumbnail_image_url,omitempty"`
	VrchatLocation                string `json:"vrchat_location,omitempty"`
}

// IDString renders the id the way route parameters carry it.
func (f Friend) IDString() string {
	return strconv.FormatInt(f.ID, 10)
}

// Integration is a linked external account. Credentials are never carried here.
type Integration struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// User is an account of the attendance tool.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may administer other users.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
