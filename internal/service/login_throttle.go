package service

import (
	"sync"
	"time"
)

// LoginThrottle deduplicates rapid repeated login attempts for the same
// identity (browsers double-firing login or OAuth requests on reload). It is
// a best-effort, in-process smoothing layer, never a security boundary: when
// an attempt falls inside the cooldown window the caller returns the user's
// existing session instead of minting a new one.
//
// The check-then-record step runs under one lock so two concurrent duplicate
// logins cannot both slip through.
type LoginThrottle struct {
	mu        sync.Mutex
	lastSeen  map[string]time.Time
	cooldown  time.Duration
	retention time.Duration
	now       func() time.Time
}

const (
	defaultLoginCooldown     = 3 * time.Second
	defaultThrottleRetention = time.Minute
)

// NewLoginThrottle creates a throttle with the given cooldown and retention
// windows. Non-positive values fall back to the defaults (3s, 1m).
func NewLoginThrottle(cooldown, retention time.Duration) *LoginThrottle {
	if cooldown <= 0 {
		cooldown = defaultLoginCooldown
	}
	if retention <= 0 {
		retention = defaultThrottleRetention
	}
	return &LoginThrottle{
		lastSeen:  make(map[string]time.Time),
		cooldown:  cooldown,
		retention: retention,
		now:       time.Now,
	}
}

// ShouldDedupe reports whether the identity was seen within the cooldown
// window. When it returns false the attempt is recorded as the identity's
// latest. Stale entries are swept on every call to bound memory.
func (t *LoginThrottle) ShouldDedupe(identity string) bool {
	if identity == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweepLocked(now)

	if last, ok := t.lastSeen[identity]; ok && now.Sub(last) < t.cooldown {
		return true
	}
	t.lastSeen[identity] = now
	return false
}

// sweepLocked evicts entries older than the retention window. Caller holds mu.
func (t *LoginThrottle) sweepLocked(now time.Time) {
	cutoff := now.Add(-t.retention)
	for identity, seen := range t.lastSeen {
		if seen.Before(cutoff) {
			delete(t.lastSeen, identity)
		}
	}
}
