package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"accumulator/internal/backend"
	"accumulator/internal/models"
	"accumulator/internal/queue"
)

// RosterWarmer reloads one roster into the cache.
type RosterWarmer interface {
	Warm(ctx context.Context, sess backend.Session, integrationID string) ([]models.Friend, error)
}

// Warmer consumes warm_friends jobs.
type Warmer struct {
	rosters RosterWarmer
	logger  *zap.Logger
	timeout time.Duration
}

// NewWarmer creates a warmer. Each job gets timeout to finish.
func NewWarmer(rosters RosterWarmer, logger *zap.Logger, timeout time.Duration) *Warmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Warmer{rosters: rosters, logger: logger, timeout: timeout}
}

// Run processes messages until ctx is done or the queue closes its channel.
func (w *Warmer) Run(ctx context.Context, q queue.Queue) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	w.logger.Info("worker started, waiting for messages")
	for msg := range messages {
		if msg.Type != queue.TypeWarmFriends {
			w.logger.Debug("skipping message", zap.String("type", msg.Type))
			continue
		}
		_ = w.Handle(ctx, msg)
	}
	w.logger.Info("worker stopped")
	return nil
}

// Handle reloads the roster named by msg. Failures are logged and returned.
func (w *Warmer) Handle(ctx context.Context, msg queue.Message) error {
	job, err := queue.DecodeWarmJob(msg)
	if err != nil {
		w.logger.Warn("invalid warm job", zap.Error(err))
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	sess := backend.Session{UserID: job.UserID, Cookie: job.Upstream}
	friends, err := w.rosters.Warm(ctx, sess, job.IntegrationID)
	if err != nil {
		w.logger.Warn("roster warm failed",
			zap.Int64("user_id", job.UserID),
			zap.String("integration_id", job.IntegrationID),
			zap.Error(err))
		return err
	}
	w.logger.Debug("roster warmed",
		zap.Int64("user_id", job.UserID),
		zap.String("integration_id", job.IntegrationID),
		zap.Int("friends", len(friends)))
	return nil
}
