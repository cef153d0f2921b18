package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	n := int64(0)
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestReportCache_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewWithClient(newFakeRedis(), time.Minute)

	_, ok := c.Get(ctx, 6)
	assert.False(t, ok)

	c.Set(ctx, 6, []byte(`{"months":[]}`))
	data, ok := c.Get(ctx, 6)
	assert.True(t, ok)
	assert.Equal(t, `{"months":[]}`, string(data))

	// A different window is a different key.
	_, ok = c.Get(ctx, 12)
	assert.False(t, ok)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx, 6)
	assert.False(t, ok)
}

func TestReportCache_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	c := New("", time.Minute)

	c.Set(ctx, 6, []byte("data"))
	_, ok := c.Get(ctx, 6)
	assert.False(t, ok)
	c.Invalidate(ctx)
	assert.NoError(t, c.Close())
}
