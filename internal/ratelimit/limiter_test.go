package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitAllowsBurst(t *testing.T) {
	limiter := New("test", 10)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
}

func TestWaitCancelledContext(t *testing.T) {
	limiter := New("test", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Exhaust the burst token first so the next wait must block.
	_ = limiter.Wait(context.Background())

	err := limiter.Wait(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "test")
}

func TestName(t *testing.T) {
	require.Equal(t, "OpenLibrary", New("OpenLibrary", 1).Name())
}
