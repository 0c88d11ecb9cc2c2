package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewRedis_DefaultPrefix(t *testing.T) {
	client, _ := setupTestRedis(t)
	l := NewRedis(client, "", 3, time.Minute)

	assert.Equal(t, "signup_attempts:1.2.3.4", l.key("1.2.3.4"))
}

func TestRedis_Allow(t *testing.T) {
	client, mr := setupTestRedis(t)
	l := NewRedis(client, "test", 2, time.Minute)
	ctx := context.Background()

	for i, want := range []bool{true, true, false, false} {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "attempt %d", i+1)
	}

	ttl := mr.TTL("test:10.0.0.1")
	assert.Equal(t, time.Minute, ttl)

	// window expires
	mr.FastForward(time.Minute + time.Second)
	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_Allow_Errors(t *testing.T) {
	t.Run("incr failure", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectTxPipeline()
		mock.ExpectIncr("test:k").SetErr(errors.New("connection reset"))

		ok, err := NewRedis(client, "test", 2, time.Minute).Allow(context.Background(), "k")

		assert.False(t, ok)
		assert.ErrorContains(t, err, "count attempt test:k")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expiry is retried after a failed first hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewRedis(client, "test", 2, time.Minute)
		ctx := context.Background()

		mock.ExpectTxPipeline()
		mock.ExpectIncr("test:k").SetVal(1)
		mock.ExpectExpireNX("test:k", time.Minute).SetErr(errors.New("READONLY"))

		ok, err := l.Allow(ctx, "k")
		assert.False(t, ok)
		assert.ErrorContains(t, err, "count attempt test:k")

		mock.ExpectTxPipeline()
		mock.ExpectIncr("test:k").SetVal(2)
		mock.ExpectExpireNX("test:k", time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()

		ok, err = l.Allow(ctx, "k")
		assert.True(t, ok)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("every hit sends the expiry", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectTxPipeline()
		mock.ExpectIncr("test:k").SetVal(3)
		mock.ExpectExpireNX("test:k", time.Minute).SetVal(false)
		mock.ExpectTxPipelineExec()

		ok, err := NewRedis(client, "test", 2, time.Minute).Allow(context.Background(), "k")

		assert.False(t, ok)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedis_Allow_KeyWithoutTTLRecovers(t *testing.T) {
	client, mr := setupTestRedis(t)
	l := NewRedis(client, "test", 2, time.Minute)

	// a counter left behind without expiry
	require.NoError(t, mr.Set("test:10.0.0.1", "5"))

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("test:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}
