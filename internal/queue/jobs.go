package queue

import (
	"encoding/json"
	"fmt"
)

// TypeWarmFriends asks a worker to reload an integration's roster into the cache.
const TypeWarmFriends = "warm_friends"

// WarmJob identifies the roster to reload and the backend cookie to load it with.
type WarmJob struct {
	UserID        int64  `json:"user_id"`
	IntegrationID string `json:"integration_id"`
	Upstream      string `json:"upstream"`
}

// NewWarmJob wraps job in a queue message.
func NewWarmJob(job WarmJob) (Message, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: TypeWarmFriends, Body: body}, nil
}

// DecodeWarmJob extracts a warm job from msg.
func DecodeWarmJob(msg Message) (WarmJob, error) {
	if msg.Type != TypeWarmFriends {
		return WarmJob{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	var job WarmJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		return WarmJob{}, fmt.Errorf("decode warm job: %w", err)
	}
	if job.IntegrationID == "" || job.Upstream == "" {
		return WarmJob{}, fmt.Errorf("warm job is missing integration or session")
	}
	return job, nil
}
