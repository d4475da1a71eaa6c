package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestTTLCache_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := New[string](60*time.Second, 0, WithClock[string](clock.Now))

	c.Set("companies:", "acme")

	v, ok := c.Get("companies:")
	require.True(t, ok)
	assert.Equal(t, "acme", v)

	clock.Advance(59 * time.Second)
	_, ok = c.Get("companies:")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("companies:")
	assert.False(t, ok, "entry must expire exactly at ttl")
}

func TestTTLCache_GetOrSet(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, 0, WithClock[int](clock.Now))
	calls := 0
	fetch := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrSet("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrSet("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	_, err = c.GetOrSet("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTTLCache_GetOrSetErrorNotCached(t *testing.T) {
	c := New[int](time.Minute, 0)
	boom := errors.New("boom")

	_, err := c.GetOrSet("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_GetOrSetSkipsStoreAfterInvalidation(t *testing.T) {
	c := New[string](time.Minute, 0)

	v, err := c.GetOrSet("companies:", func() (string, error) {
		// a company write lands while the list is being read
		c.DeletePrefix("companies:")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", v)
	_, ok := c.Get("companies:")
	assert.False(t, ok)

	_, err = c.GetOrSet("other", func() (string, error) {
		c.Delete("other")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	v, err = c.GetOrSet("companies:", func() (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	got, ok := c.Get("companies:")
	assert.True(t, ok)
	assert.Equal(t, "fresh", got)
}

func TestTTLCache_Invalidation(t *testing.T) {
	c := New[string](time.Minute, 0)
	c.Set("companies:", "all")
	c.Set("companies:acme", "acme")
	c.Set("other", "x")

	c.Delete("other")
	_, ok := c.Get("other")
	assert.False(t, ok)

	c.DeletePrefix("companies:")
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_Purge(t *testing.T) {
	clock := newFakeClock()
	c := New[string](time.Minute, 0, WithClock[string](clock.Now))
	c.Set("a", "1")
	clock.Advance(30 * time.Second)
	c.Set("b", "2")
	clock.Advance(30 * time.Second)

	c.Purge()
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestTTLCache_StartCleanupStops(t *testing.T) {
	c := New[string](time.Millisecond, time.Millisecond)
	c.StartCleanup(context.Background())
	c.Set("a", "1")

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	c.Close()
	c.Close()
}
