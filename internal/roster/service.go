package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"accumulator/internal/backend"
	"accumulator/internal/models"
	"accumulator/internal/queue"
	"accumulator/internal/store"
)

// Backend is the subset of the backend client the roster needs.
type Backend interface {
	ListFriends(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
	RefreshFriends(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
	UpdateFriends(ctx context.Context, sess backend.Session, integrationID string) error
	Promote(ctx context.Context, sess backend.Session, integrationID, friendID string) error
	Demote(ctx context.Context, sess backend.Session, integrationID, friendID string) error
	DeleteIntegration(ctx context.Context, sess backend.Session, integrationID string) error
}

// Cache stores JSON values with a TTL. Get returns store.ErrCacheMiss for absent keys.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Publisher enqueues background jobs.
type Publisher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// LookupRecorder counts cache lookups by result.
type LookupRecorder interface {
	RecordCacheLookup(result string)
}

// Service serves integration rosters through a per-user cache.
type Service struct {
	backend Backend
	cache   Cache
	jobs    Publisher
	metrics LookupRecorder
	ttl     time.Duration
	logger  *zap.Logger
}

// NewService builds a roster service. cache, jobs and metrics may be nil.
func NewService(b Backend, cache Cache, jobs Publisher, metrics LookupRecorder, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: b, cache: cache, jobs: jobs, metrics: metrics, ttl: ttl, logger: logger}
}

// Key is the cache key of one user's roster for one integration.
func Key(userID int64, integrationID string) string {
	return fmt.Sprintf("accumulator:friends:%d:%s", userID, integrationID)
}

// Friends returns the roster, from cache when possible. Cache failures fall
// through to the backend.
func (s *Service) Friends(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error) {
	key := Key(sess.UserID, integrationID)
	if s.cache != nil {
		var cached []models.Friend
		err := s.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			s.record("hit")
			return cached, nil
		case errors.Is(err, store.ErrCacheMiss):
			s.record("miss")
		default:
			s.record("error")
			s.logger.Warn("friend cache read failed", zap.String("key", key), zap.Error(err))
		}
	}
	return s.Warm(ctx, sess, integrationID)
}

// Warm loads the roster from the backend and stores it in the cache.
func (s *Service) Warm(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error) {
	friends, err := s.backend.ListFriends(ctx, sess, integrationID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, sess, integrationID, friends)
	return friends, nil
}

// Refresh asks the backend to re-pull the roster from the platform and caches the result.
func (s *Service) Refresh(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error) {
	friends, err := s.backend.RefreshFriends(ctx, sess, integrationID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, sess, integrationID, friends)
	return friends, nil
}

// UpdateFriends triggers a backend roster update.
func (s *Service) UpdateFriends(ctx context.Context, sess backend.Session, integrationID string) error {
	if err := s.backend.UpdateFriends(ctx, sess, integrationID); err != nil {
		return err
	}
	s.changed(ctx, sess, integrationID, true)
	return nil
}

// Promote marks a friend as a teacher.
func (s *Service) Promote(ctx context.Context, sess backend.Session, integrationID, friendID string) error {
	if err := s.backend.Promote(ctx, sess, integrationID, friendID); err != nil {
		return err
	}
	s.changed(ctx, sess, integrationID, true)
	return nil
}

// Demote marks a teacher as a student.
func (s *Service) Demote(ctx context.Context, sess backend.Session, integrationID, friendID string) error {
	if err := s.backend.Demote(ctx, sess, integrationID, friendID); err != nil {
		return err
	}
	s.changed(ctx, sess, integrationID, true)
	return nil
}

// DeleteIntegration removes an integration and forgets its roster.
func (s *Service) DeleteIntegration(ctx context.Context, sess backend.Session, integrationID string) error {
	if err := s.backend.DeleteIntegration(ctx, sess, integrationID); err != nil {
		return err
	}
	s.changed(ctx, sess, integrationID, false)
	return nil
}

// changed drops the cached roster and optionally schedules a reload.
func (s *Service) changed(ctx context.Context, sess backend.Session, integrationID string, warm bool) {
	key := Key(sess.UserID, integrationID)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("friend cache invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
	if !warm || s.jobs == nil {
		return
	}
	msg, err := queue.NewWarmJob(queue.WarmJob{UserID: sess.UserID, IntegrationID: integrationID, Upstream: sess.Cookie})
	if err == nil {
		err = s.jobs.Publish(ctx, msg)
	}
	if err != nil {
		s.logger.Warn("enqueue roster warm failed", zap.String("integration_id", integrationID), zap.Error(err))
	}
}

func (s *Service) store(ctx context.Context, sess backend.Session, integrationID string, friends []models.Friend) {
	if s.cache == nil {
		return
	}
	key := Key(sess.UserID, integrationID)
	if err := s.cache.SetJSON(ctx, key, friends, s.ttl); err != nil {
		s.logger.Warn("friend cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) record(result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(result)
	}
}

// Split separates a roster into students and teachers, keeping roster order.
func Split(friends []models.Friend) (students, teachers []models.Friend) {
	students = make([]models.Friend, 0, len(friends))
	teachers = make([]models.Friend, 0)
	for _, f := range friends {
		if f.IsTeacher {
			teachers = append(teachers, f)
		} else {
			students = append(students, f)
		}
	}
	return students, teachers
}
