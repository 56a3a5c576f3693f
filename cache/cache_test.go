package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, cfg Config) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	c := newCache(cfg, clock.now)
	t.Cleanup(c.Stop)
	return c, clock
}

func TestSetGetExpire(t *testing.T) {
	c, clock := newTestCache(t, DefaultConfig())
	key := Key("GET", "https://api.commex.com/api/v1/exchangeInfo")

	c.Set(key, 200, `{"symbols":[]}`, time.Minute)
	item, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, `{"symbols":[]}`, item.Body)
	assert.Equal(t, 200, item.StatusCode)

	clock.advance(2 * time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok)

	c.deleteExpired()
	assert.Equal(t, 0, c.Len())
}

func TestZeroDurationIsNotStored(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	c.Set("k", 200, "body", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMaxSizeEvictsNearestExpiry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCacheSize = 2
	c, _ := newTestCache(t, cfg)

	c.Set("short", 200, "a", time.Second)
	c.Set("long", 200, "b", time.Hour)
	c.Set("mid", 200, "c", time.Minute)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
}

func TestDeleteClearStop(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	c.Set("a", 200, "1", time.Minute)
	c.Set("b", 200, "2", time.Minute)
	c.Delete("a")
	assert.Equal(t, 1, c.Len())
	c.Clear()
	assert.Equal(t, 0, c.Len())

	c.Stop()
	c.Stop()
}

func TestConfigTTLCap(t *testing.T) {
	cfg := Config{MaxTTL: time.Minute}
	assert.Equal(t, time.Minute, cfg.TTL(5*time.Minute))
	assert.Equal(t, 30*time.Second, cfg.TTL(30*time.Second))
	assert.Equal(t, 5*time.Minute, Config{}.TTL(5*time.Minute))
}
