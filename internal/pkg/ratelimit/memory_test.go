package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterAllowsBurstThenDenies(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(ctx, "client-a")
		require.NoError(t, err)
		require.True(t, ok, "request %d should pass", i+1)
	}

	ok, retryAfter, err := l.Allow(ctx, "client-a")
	require.NoError(t, err)
	require.False(t, ok)
	require.Greater(t, retryAfter, time.Duration(0))
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "client-a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "client-a")
	require.NoError(t, err)
	require.False(t, ok)

	ok, _, err = l.Allow(ctx, "client-b")
	require.NoError(t, err)
	require.True(t, ok)
}
