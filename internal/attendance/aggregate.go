package attendance

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"accumulator/internal/models"
)

// UnknownName labels a group whose student is missing from the roster.
const UnknownName = "Unknown name"

// Scope identifies which records are relevant to a view: the teacher being
// looked at and the integration from the route. The integration is kept in
// its route string form and compared against the record's decimal id.
type Scope struct {
	TeacherID     int64
	IntegrationID string
}

// Includes reports whether a record belongs to the scope.
func (s Scope) Includes(r models.AttendanceRecord) bool {
	return r.TeacherID == s.TeacherID && strconv.FormatInt(r.IntegrationID, 10) == s.IntegrationID
}

// Group holds all attendance of one student, most recent first.
type Group struct {
	FriendID int64                     `json:"friend_id"`
	Student  *models.Friend            `json:"student"`
	Records  []models.AttendanceRecord `json:"-"`
	Visible  []models.AttendanceRecord `json:"records"`
}

// Label is the student's display name, or UnknownName.
func (g Group) Label() string {
	if g.Student == nil {
		return UnknownName
	}
	return g.Student.VrchatDisplayName
}

// MarshalJSON adds the resolved label as "name".
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	return json.Marshal(struct {
		plain
		Name string `json:"name"`
	}{plain(g), g.Label()})
}

// FormatTimestamp renders a unix timestamp in UTC ISO-8601 with milliseconds.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02T15:04:05.000Z")
}

// Aggregate buckets records by friend in order of first appearance, sorts
// each bucket by timestamp descending and resolves the student of every
// bucket against friends. Records outside scope stay in their bucket but are
// left out of Visible. Equal timestamps keep their input order.
//
// Neither records nor friends are modified.
func Aggregate(records []models.AttendanceRecord, friends []models.Friend, scope Scope) []Group {
	if len(records) == 0 {
		return []Group{}
	}

	index := make(map[int64]int)
	groups := make([]Group, 0)
	for _, r := range records {
		i, ok := index[r.FriendID]
		if !ok {
			i = len(groups)
			index[r.FriendID] = i
			groups = append(groups, Group{FriendID: r.FriendID})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	roster := make(map[int64]*models.Friend, len(friends))
	for i := range friends {
		if _, seen := roster[friends[i].ID]; seen {
			continue
		}
		f := friends[i]
		roster[f.ID] = &f
	}

	for i := range groups {
		g := &groups[i]
		sort.SliceStable(g.Records, func(a, b int) bool {
			return g.Records[a].Timestamp > g.Records[b].Timestamp
		})
		g.Student = roster[g.FriendID]
		g.Visible = make([]models.AttendanceRecord, 0, len(g.Records))
		for _, r := range g.Records {
			if scope.Includes(r) {
				g.Visible = append(g.Visible, r)
			}
		}
	}
	return groups
}
