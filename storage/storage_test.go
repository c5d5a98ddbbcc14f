package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestStorage_RoundTrip(t *testing.T) {
	var testCases = []struct {
		description string
		new         func(t *testing.T) Storage
	}{
		{
			description: "memory",
			new:         func(t *testing.T) Storage { return NewMemory() },
		},
		{
			description: "file",
			new:         func(t *testing.T) Storage { return NewFile(filepath.Join(t.TempDir(), "session")) },
		},
		{
			description: "bolt",
			new: func(t *testing.T) Storage {
				ret, err := NewBolt(filepath.Join(t.TempDir(), "session.db"))
				require.Nil(t, err)
				t.Cleanup(func() { _ = ret.Close() })
				return ret
			},
		},
		{
			description: "redis",
			new: func(t *testing.T) Storage {
				_, client := newTestRedis(t)
				return NewRedis(client, "")
			},
		},
	}

	ctx := context.Background()
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			store := testCase.new(t)

			_, ok, err := store.Get(ctx, "access_token")
			require.Nil(t, err)
			assert.False(t, ok)

			require.Nil(t, store.Set(ctx, "access_token", "abc"))
			require.Nil(t, store.Set(ctx, "auth-storage", `{"state":{"token":"abc","user":null},"version":0}`))
			value, ok, err := store.Get(ctx, "access_token")
			require.Nil(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", value)

			require.Nil(t, store.Set(ctx, "access_token", "def"))
			value, _, _ = store.Get(ctx, "access_token")
			assert.Equal(t, "def", value)

			require.Nil(t, store.Remove(ctx, "access_token"))
			_, ok, err = store.Get(ctx, "access_token")
			require.Nil(t, err)
			assert.False(t, ok)
			assert.Nil(t, store.Remove(ctx, "access_token"), "removing absent key")

			value, ok, _ = store.Get(ctx, "auth-storage")
			assert.True(t, ok)
			assert.Contains(t, value, `"token":"abc"`)
		})
	}
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedis(client, "tab-1:")
	require.Nil(t, store.Set(context.Background(), "access_token", "abc"))
	value, err := mr.Get("tab-1:access_token")
	require.Nil(t, err)
	assert.Equal(t, "abc", value)
}

func TestMemory_WithValue(t *testing.T) {
	store := NewMemory(WithValue("access_token", "seed"))
	value, ok, err := store.Get(context.Background(), "access_token")
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "seed", value)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr, _ := newTestRedis(t)
	dir := t.TempDir()

	var testCases = []struct {
		description string
		URL         string
		expectType  interface{}
		expectErr   error
	}{
		{description: "memory", URL: "mem://localhost/session", expectType: &memoryStore{}},
		{description: "bolt", URL: "bolt://" + filepath.Join(dir, "s.db"), expectType: &BoltStore{}},
		{description: "redis", URL: "redis://" + mr.Addr() + "/0", expectType: &RedisStore{}},
		{description: "plain path", URL: filepath.Join(dir, "files"), expectType: &FileStore{}},
		{description: "file url", URL: "file://" + filepath.Join(dir, "files2"), expectType: &FileStore{}},
		{description: "unsupported", URL: "ftp://example.com/x", expectErr: ErrUnsupportedScheme},
		{description: "empty", URL: "", expectErr: ErrUnsupportedScheme},
	}
	for _, testCase := range testCases {
		actual, closer, err := Open(ctx, testCase.URL)
		if testCase.expectErr != nil {
			assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.IsType(t, testCase.expectType, actual, testCase.description)
		require.NotNil(t, closer, testCase.description)
		assert.Nil(t, closer.Close(), testCase.description)
	}
}
