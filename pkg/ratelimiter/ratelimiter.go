package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy caps the number of attempts inside a sliding window
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// Decision is the outcome of an Allow call
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds for the Retry-After header
func (d Decision) RetryAfterSeconds() int {
	if d.RetryAfter <= 0 {
		return 0
	}
	seconds := int(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		seconds++
	}
	return seconds
}

// Limiter is an in-memory sliding window limiter. Attempts are tracked per
// namespace:key and each namespace has its own policy.
//
//	rl := ratelimiter.New()
//	rl.SetPolicy("builder.generate", 10, time.Minute)
//	if d := rl.Allow("builder.generate", sessionID); !d.Allowed {
//	    w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfterSeconds()))
//	}
type Limiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter and starts its cleanup goroutine
func New() *Limiter {
	rl := newLimiter(time.Now)
	go rl.cleanup(time.Minute)
	return rl
}

func newLimiter(now func() time.Time) *Limiter {
	return &Limiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      now,
		stop:     make(chan struct{}),
	}
}

// SetPolicy configures a namespace. A non-positive maxAttempts disables limiting for it.
func (rl *Limiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt when the window has room.
// Namespaces without a policy are denied.
func (rl *Limiter) Allow(namespace, key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return Decision{Allowed: false}
	}
	if policy.MaxAttempts <= 0 {
		return Decision{Allowed: true, Remaining: -1}
	}

	now := rl.now()
	compositeKey := namespace + ":" + key
	valid := prune(rl.attempts[compositeKey], now.Add(-policy.Window))

	if len(valid) >= policy.MaxAttempts {
		rl.attempts[compositeKey] = valid
		return Decision{
			Allowed:    false,
			RetryAfter: valid[0].Add(policy.Window).Sub(now),
		}
	}

	valid = append(valid, now)
	rl.attempts[compositeKey] = valid
	return Decision{Allowed: true, Remaining: policy.MaxAttempts - len(valid)}
}

// Reset forgets every attempt for namespace:key
func (rl *Limiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, namespace+":"+key)
}

// Stop ends the cleanup goroutine
func (rl *Limiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

// prune keeps attempts newer than cutoff; attempts are stored oldest first
func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

func (rl *Limiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for compositeKey, attempts := range rl.attempts {
		namespace := compositeKey
		if idx := strings.LastIndex(compositeKey, ":"); idx >= 0 {
			namespace = compositeKey[:idx]
		}
		policy, ok := rl.policies[namespace]
		if !ok {
			delete(rl.attempts, compositeKey)
			continue
		}
		if valid := prune(attempts, now.Add(-policy.Window)); len(valid) == 0 {
			delete(rl.attempts, compositeKey)
		} else {
			rl.attempts[compositeKey] = valid
		}
	}
}

func (rl *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}
