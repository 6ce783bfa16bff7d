package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestKeyedLimiter_BurstThenBlocksThenRefills(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(1_700_000_000, 0))
	l := NewKeyedLimiter(clk.Now, Config{RPS: 1, Burst: 2})

	require.True(t, l.Allow("ip1"))
	require.True(t, l.Allow("ip1"))
	require.False(t, l.Allow("ip1"), "bucket should be empty")

	clk.Add(time.Second)
	require.True(t, l.Allow("ip1"), "one token refilled")
	require.False(t, l.Allow("ip1"))

	clk.Add(10 * time.Second)
	require.True(t, l.Allow("ip1"))
	require.True(t, l.Allow("ip1"))
	require.False(t, l.Allow("ip1"), "refill is capped by burst")
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(1_700_000_000, 0))
	l := NewKeyedLimiter(clk.Now, Config{RPS: 1, Burst: 1})

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
}

func TestKeyedLimiter_MaxKeys(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(1_700_000_000, 0))
	l := NewKeyedLimiter(clk.Now, Config{RPS: 10, Burst: 10, MaxKeys: 1})

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("b"), "no room for a second key")
	require.True(t, l.Allow("a"))
}

func TestKeyedLimiter_EvictsIdleKeys(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(1_700_000_000, 0))
	l := NewKeyedLimiter(clk.Now, Config{RPS: 1, Burst: 1, IdleTTL: time.Minute})

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.Equal(t, 2, l.Len())

	clk.Add(2 * time.Minute)
	require.True(t, l.Allow("c"))
	require.Equal(t, 1, l.Len())
}

func TestKeyedLimiter_Defaults(t *testing.T) {
	t.Parallel()

	l := NewKeyedLimiter(nil, Config{RPS: -1, Burst: 0, MaxKeys: -5})
	require.Equal(t, 1.0, l.cfg.RPS)
	require.Equal(t, 1, l.cfg.Burst)
	require.Equal(t, 0, l.cfg.MaxKeys)
	require.True(t, l.Allow("x"))
}
