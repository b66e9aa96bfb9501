package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/timetracker/internal/testutil"
)

func TestLoginThrottle_LocksAfterMaxAttempts(t *testing.T) {
	_, client := testutil.SetupMiniRedis(t)
	th, err := NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 3, Window: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	for range 3 {
		ok, allowErr := th.Allow(ctx, "alice")
		require.NoError(t, allowErr)
		assert.True(t, ok)
		require.NoError(t, th.Fail(ctx, "alice"))
	}

	ok, err := th.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	// Usernames are normalized.
	ok, err = th.Allow(ctx, " ALICE ")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = th.Allow(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	mr, client := testutil.SetupMiniRedis(t)
	th, err := NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 1, Window: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, th.Fail(ctx, "carol"))
	assert.Equal(t, time.Minute, mr.TTL("login:fail:carol"))

	ok, err := th.Allow(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(61 * time.Second)

	ok, err = th.Allow(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_Reset(t *testing.T) {
	mr, client := testutil.SetupMiniRedis(t)
	th, err := NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 1, Window: time.Minute, Prefix: "t:"})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, th.Fail(ctx, "dave"))
	assert.True(t, mr.Exists("t:dave"))
	require.NoError(t, th.Reset(ctx, "dave"))
	assert.False(t, mr.Exists("t:dave"))
}

func TestLoginThrottle_RedisDown(t *testing.T) {
	mr, client := testutil.SetupMiniRedis(t)
	th, err := NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 1, Window: time.Minute})
	require.NoError(t, err)
	mr.Close()

	_, err = th.Allow(context.Background(), "erin")
	require.Error(t, err)
	require.Error(t, th.Fail(context.Background(), "erin"))
}

func TestNewLoginThrottle_InvalidOptions(t *testing.T) {
	_, client := testutil.SetupMiniRedis(t)

	_, err := NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 0, Window: time.Minute})
	require.Error(t, err)
	_, err = NewLoginThrottle(client, LoginThrottleOptions{MaxAttempts: 1})
	require.Error(t, err)
}

func TestNoopLoginThrottle(t *testing.T) {
	var th NoopLoginThrottle
	ok, err := th.Allow(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, th.Fail(context.Background(), "x"))
	assert.NoError(t, th.Reset(context.Background(), "x"))
}
