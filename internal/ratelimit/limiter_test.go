package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAllowsBurst(t *testing.T) {
	limiter := New("test", 10)

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond, "burst should not block")
}

func TestWaitCancelledContext(t *testing.T) {
	limiter := New("openlibrary", 1)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openlibrary")
}

func TestName(t *testing.T) {
	assert.Equal(t, "covers", New("covers", 1).Name())
}
