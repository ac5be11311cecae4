package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestSetGet(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	type profile struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	require.NoError(t, Set(ctx, "user:1", profile{Name: "alice", Age: 30}, time.Minute))

	var got profile
	require.NoError(t, Get(ctx, "user:1", &got))
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, 30, got.Age)
}

func TestGetMissingKey(t *testing.T) {
	setupCache(t)

	var dest string
	err := Get(context.Background(), "missing", &dest)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestStringHelpers(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetString(ctx, "reset:code:alice@example.com", "123456", time.Minute))

	code, err := GetString(ctx, "reset:code:alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	// 过期后应取不到
	mr.FastForward(2 * time.Minute)
	_, err = GetString(ctx, "reset:code:alice@example.com")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDeleteAndExists(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetString(ctx, "k1", "v1", 0))

	ok, err := Exists(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, Delete(ctx, "k1"))

	ok, err = Exists(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncr(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	n, err := Incr(ctx, "ratelimit:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Incr(ctx, "ratelimit:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSetNX(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	ok, err := SetNX(ctx, "lock:booking:1", "holder-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = SetNX(ctx, "lock:booking:1", "holder-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "hotel:1:rooms", BuildKey(KeyPrefixHotel, "1", "rooms"))
	assert.Equal(t, "user:42", BuildKey(KeyPrefixUser, "42"))
}
