package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRedisBehavesAsEmptyCache(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	var dest []string
	assert.True(t, errors.Is(r.GetJSON(ctx, "k", &dest), ErrCacheMiss))
	assert.NoError(t, r.SetJSON(ctx, "k", []string{"a"}, time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.False(t, r.Healthy(ctx))
	assert.NoError(t, r.Close())
}

func TestUnreachableRedisReportsErrors(t *testing.T) {
	r := NewRedis("127.0.0.1:1")
	t.Cleanup(func() { _ = r.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var dest []string
	err := r.GetJSON(ctx, "k", &dest)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCacheMiss))
	assert.Error(t, r.SetJSON(ctx, "k", []string{"a"}, time.Minute))
	assert.False(t, r.Healthy(ctx))
}
