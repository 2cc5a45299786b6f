package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_Allow(t *testing.T) {
	c := &clock{now: time.Unix(1000, 0)}
	rl := newLimiter(c.Now)
	rl.SetPolicy("generate", 2, time.Minute)

	d := rl.Allow("generate", "s1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	c.Advance(10 * time.Second)
	assert.True(t, rl.Allow("generate", "s1").Allowed)

	d = rl.Allow("generate", "s1")
	require.False(t, d.Allowed)
	assert.Equal(t, 50*time.Second, d.RetryAfter)
	assert.Equal(t, 50, d.RetryAfterSeconds())

	assert.True(t, rl.Allow("generate", "s2").Allowed, "keys are independent")

	c.Advance(51 * time.Second)
	assert.True(t, rl.Allow("generate", "s1").Allowed, "oldest attempt left the window")
}

func TestLimiter_UnknownNamespaceIsDenied(t *testing.T) {
	rl := newLimiter(time.Now)
	assert.False(t, rl.Allow("missing", "k").Allowed)
}

func TestLimiter_DisabledPolicy(t *testing.T) {
	rl := newLimiter(time.Now)
	rl.SetPolicy("sendTest", 0, time.Minute)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("sendTest", "k").Allowed)
	}
}

func TestLimiter_Reset(t *testing.T) {
	rl := newLimiter(time.Now)
	rl.SetPolicy("sendTest", 1, time.Hour)
	assert.True(t, rl.Allow("sendTest", "k").Allowed)
	assert.False(t, rl.Allow("sendTest", "k").Allowed)

	rl.Reset("sendTest", "k")
	assert.True(t, rl.Allow("sendTest", "k").Allowed)
}

func TestLimiter_Sweep(t *testing.T) {
	c := &clock{now: time.Unix(1000, 0)}
	rl := newLimiter(c.Now)
	rl.SetPolicy("ns:with:colons", 5, time.Minute)

	rl.Allow("ns:with:colons", "k")
	rl.sweep()
	assert.Len(t, rl.attempts, 1)

	c.Advance(2 * time.Minute)
	rl.sweep()
	assert.Empty(t, rl.attempts)
}

func TestDecision_RetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, Decision{}.RetryAfterSeconds())
	assert.Equal(t, 2, Decision{RetryAfter: 1500 * time.Millisecond}.RetryAfterSeconds())
	assert.Equal(t, 3, Decision{RetryAfter: 3 * time.Second}.RetryAfterSeconds())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	rl := New()
	rl.Stop()
	rl.Stop()
}
