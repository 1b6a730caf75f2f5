package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accumulator/internal/models"
)

func rec(friend, teacher, integration, ts int64, loc string) models.AttendanceRecord {
	return models.AttendanceRecord{FriendID: friend, TeacherID: teacher, IntegrationID: integration, Timestamp: ts, Location: loc}
}

func TestAggregateGroupsSortsAndLabels(t *testing.T) {
	records := []models.AttendanceRecord{
		rec(1, 9, 5, 100, "A"),
		rec(1, 9, 5, 200, "B"),
		rec(2, 9, 5, 150, "C"),
	}
	friends := []models.Friend{{ID: 1, VrchatDisplayName: "Alice"}}

	groups := Aggregate(records, friends, Scope{TeacherID: 9, IntegrationID: "5"})

	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].FriendID)
	assert.Equal(t, "Alice", groups[0].Label())
	assert.Equal(t, []models.AttendanceRecord{rec(1, 9, 5, 200, "B"), rec(1, 9, 5, 100, "A")}, groups[0].Visible)

	assert.Equal(t, int64(2), groups[1].FriendID)
	assert.Nil(t, groups[1].Student)
	assert.Equal(t, UnknownName, groups[1].Label())
	assert.Equal(t, []models.AttendanceRecord{rec(2, 9, 5, 150, "C")}, groups[1].Visible)
}

func TestAggregateEmptyInput(t *testing.T) {
	groups := Aggregate(nil, []models.Friend{{ID: 1, VrchatDisplayName: "Alice"}}, Scope{TeacherID: 1, IntegrationID: "1"})
	require.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestAggregateGroupOrderIsFirstSeen(t *testing.T) {
	records := []models.AttendanceRecord{
		rec(30, 1, 1, 1, ""),
		rec(10, 1, 1, 5, ""),
		rec(30, 1, 1, 9, ""),
		rec(20, 1, 1, 2, ""),
		rec(10, 1, 1, 3, ""),
	}
	groups := Aggregate(records, nil, Scope{TeacherID: 1, IntegrationID: "1"})

	var keys []int64
	for _, g := range groups {
		keys = append(keys, g.FriendID)
	}
	assert.Equal(t, []int64{30, 10, 20}, keys)
}

func TestAggregateProperties(t *testing.T) {
	records := []models.AttendanceRecord{
		rec(3, 7, 2, 40, "w1"),
		rec(4, 7, 2, 10, "w2"),
		rec(3, 8, 2, 90, "other-teacher"),
		rec(3, 7, 12, 70, "other-integration"),
		rec(4, 7, 2, 30, "w3"),
		rec(3, 7, 2, 40, "w4"),
		rec(5, 8, 2, 1, "hidden"),
	}
	before := append([]models.AttendanceRecord(nil), records...)
	scope := Scope{TeacherID: 7, IntegrationID: "2"}

	groups := Aggregate(records, nil, scope)

	assert.Equal(t, before, records, "input must not be mutated")
	assert.Len(t, groups, 3, "one group per distinct friend")

	total := 0
	for _, g := range groups {
		total += len(g.Records)
		for i, r := range g.Records {
			assert.Equal(t, g.FriendID, r.FriendID)
			if i > 0 {
				assert.GreaterOrEqual(t, g.Records[i-1].Timestamp, r.Timestamp)
			}
		}
		for _, r := range g.Visible {
			assert.True(t, scope.Includes(r))
		}
	}
	assert.Equal(t, len(records), total, "filtering never removes group members")

	assert.Len(t, groups[0].Records, 4)
	assert.Equal(t, []string{"w1", "w4"}, locations(groups[0].Visible))
	assert.Empty(t, groups[2].Visible, "group survives even when nothing is visible")
}

func TestAggregateEqualTimestampsKeepInputOrder(t *testing.T) {
	records := []models.AttendanceRecord{
		rec(1, 1, 1, 50, "first"),
		rec(1, 1, 1, 60, "newest"),
		rec(1, 1, 1, 50, "second"),
		rec(1, 1, 1, 50, "third"),
	}
	groups := Aggregate(records, nil, Scope{TeacherID: 1, IntegrationID: "1"})
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"newest", "first", "second", "third"}, locations(groups[0].Visible))
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []models.AttendanceRecord{rec(2, 1, 1, 3, "x"), rec(1, 1, 1, 4, "y"), rec(2, 1, 1, 8, "z")}
	friends := []models.Friend{{ID: 2, VrchatDisplayName: "Bo"}}
	scope := Scope{TeacherID: 1, IntegrationID: "1"}

	assert.Equal(t, Aggregate(records, friends, scope), Aggregate(records, friends, scope))
}

func TestAggregateStudentIsACopy(t *testing.T) {
	friends := []models.Friend{{ID: 1, VrchatDisplayName: "Alice"}}
	groups := Aggregate([]models.AttendanceRecord{rec(1, 1, 1, 1, "")}, friends, Scope{TeacherID: 1, IntegrationID: "1"})
	groups[0].Student.VrchatDisplayName = "changed"
	assert.Equal(t, "Alice", friends[0].VrchatDisplayName)
}

func TestScopeComparesIntegrationAsString(t *testing.T) {
	r := rec(1, 9, 5, 0, "")
	assert.True(t, Scope{TeacherID: 9, IntegrationID: "5"}.Includes(r))
	assert.False(t, Scope{TeacherID: 9, IntegrationID: "05"}.Includes(r))
	assert.False(t, Scope{TeacherID: 9, IntegrationID: " 5"}.Includes(r))
	assert.False(t, Scope{TeacherID: 8, IntegrationID: "5"}.Includes(r))
}

func locations(records []models.AttendanceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Location)
	}
	return out
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00.000Z", FormatTimestamp(0))
	assert.Equal(t, "2020-09-13T12:26:40.000Z", FormatTimestamp(1600000000))
}

func TestGroupJSONCarriesLabelAndVisibleRecords(t *testing.T) {
	groups := Aggregate([]models.AttendanceRecord{
		rec(1, 9, 5, 100, "A"),
		rec(1, 8, 5, 200, "B"),
	}, []models.Friend{{ID: 1, VrchatDisplayName: "Alice"}}, Scope{TeacherID: 9, IntegrationID: "5"})

	raw, err := json.Marshal(groups[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"friend_id": 1,
		"name": "Alice",
		"student": {"id": 1, "is_teacher": false, "vrchat_display_name": "Alice"},
		"records": [{"location": "A", "integration_id": 5, "teacher_id": 9, "friend_id": 1, "timestamp": 100}]
	}`, string(raw))
}
