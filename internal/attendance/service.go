package attendance

import (
	"context"

	"golang.org/x/sync/errgroup"

	"accumulator/internal/apperrors"
	"accumulator/internal/backend"
	"accumulator/internal/models"
)

// FriendLister returns the roster of an integration.
type FriendLister interface {
	Friends(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
}

// RecordLister returns the raw attendance of a teacher within an integration.
type RecordLister interface {
	ListAttendance(ctx context.Context, sess backend.Session, integrationID, teacherID string) ([]models.AttendanceRecord, error)
}

// View is the display-ready attendance of one teacher.
type View struct {
	IntegrationID string        `json:"integration_id"`
	Teacher       models.Friend `json:"teacher"`
	Groups        []Group       `json:"groups"`
}

// Service builds attendance views from the backend.
type Service struct {
	friends FriendLister
	records RecordLister
}

// NewService creates a service.
func NewService(friends FriendLister, records RecordLister) *Service {
	return &Service{friends: friends, records: records}
}

// View fetches the roster and the attendance list concurrently, resolves the
// teacher from the roster and aggregates the records in that teacher's scope.
func (s *Service) View(ctx context.Context, sess backend.Session, integrationID, teacherID string) (View, error) {
	var (
		friends []models.Friend
		records []models.AttendanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		friends, err = s.friends.Friends(gctx, sess, integrationID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.records.ListAttendance(gctx, sess, integrationID, teacherID)
		return err
	})
	if err := g.Wait(); err != nil {
		return View{}, err
	}

	teacher, ok := findByRouteID(friends, teacherID)
	if !ok {
		return View{}, apperrors.Clone(apperrors.ErrTeacherNotFound, "")
	}

	return View{
		IntegrationID: integrationID,
		Teacher:       teacher,
		Groups:        Aggregate(records, friends, Scope{TeacherID: teacher.ID, IntegrationID: integrationID}),
	}, nil
}

func findByRouteID(friends []models.Friend, id string) (models.Friend, bool) {
	for _, f := range friends {
		if f.IDString() == id {
			return f, true
		}
	}
	return models.Friend{}, false
}
