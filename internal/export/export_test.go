package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accumulator/internal/apperrors"
	"accumulator/internal/attendance"
	"accumulator/internal/models"
)

func sampleView() attendance.View {
	records := []models.AttendanceRecord{
		{FriendID: 1, TeacherID: 9, IntegrationID: 5, Timestamp: 100, Location: "wrld_a"},
		{FriendID: 1, TeacherID: 9, IntegrationID: 5, Timestamp: 200, Location: "wrld_b, private"},
		{FriendID: 2, TeacherID: 9, IntegrationID: 5, Timestamp: 150, Location: "wrld_c"},
		{FriendID: 2, TeacherID: 8, IntegrationID: 5, Timestamp: 160, Location: "elsewhere"},
	}
	friends := []models.Friend{{ID: 1, VrchatDisplayName: "Alice"}, {ID: 9, IsTeacher: true, VrchatDisplayName: "Teach"}}
	return attendance.View{
		IntegrationID: "5",
		Teacher:       friends[1],
		Groups:        attendance.Aggregate(records, friends, attendance.Scope{TeacherID: 9, IntegrationID: "5"}),
	}
}

func TestFromViewUsesVisibleRecordsInOrder(t *testing.T) {
	data := FromView(sampleView())

	assert.Equal(t, []string{ColumnStudent, ColumnTimestamp, ColumnLocation}, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "Alice", data.Rows[0][ColumnStudent])
	assert.Equal(t, "1970-01-01T00:03:20.000Z", data.Rows[0][ColumnTimestamp])
	assert.Equal(t, "wrld_a", data.Rows[1][ColumnLocation])
	assert.Equal(t, attendance.UnknownName, data.Rows[2][ColumnStudent])
}

func TestRenderCSV(t *testing.T) {
	file, err := Render("CSV", sampleView())
	require.NoError(t, err)

	assert.Equal(t, "attendance-5-9.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "Student,Timestamp,Location\n"+
		"Alice,1970-01-01T00:03:20.000Z,\"wrld_b, private\"\n"+
		"Alice,1970-01-01T00:01:40.000Z,wrld_a\n"+
		"Unknown name,1970-01-01T00:02:30.000Z,wrld_c\n", string(file.Content))
}

func TestRenderCSVEmptyView(t *testing.T) {
	file, err := Render(FormatCSV, attendance.View{IntegrationID: "5", Groups: []attendance.Group{}})
	require.NoError(t, err)
	assert.Equal(t, "Student,Timestamp,Location\n", string(file.Content))
}

func TestRenderPDF(t *testing.T) {
	file, err := Render(FormatPDF, sampleView())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render("xlsx", sampleView())
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.False(t, Supported("xlsx"))
	assert.True(t, Supported("PDF"))
}

func TestRenderRequiresHeaders(t *testing.T) {
	_, err := RenderCSV(Dataset{})
	assert.Error(t, err)
	_, err = RenderPDF(Dataset{}, "x")
	assert.Error(t, err)
}
