// Package limiter tracks failed login attempts per identifier and decides
// admission with a progressive exponential backoff. State lives in process
// memory behind a single mutex; the limiter is constructed once per process
// and closed on shutdown.
package limiter

import (
	"strings"
	"sync"
	"time"
)

type Config struct {
	// Threshold is the number of consecutive failures after which a
	// lockout starts.
	Threshold int
	// BaseDelay is the first lockout duration; each further failure
	// doubles it up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// InactivityWindow is how long an entry survives without attempts
	// before the purge loop drops it.
	InactivityWindow time.Duration
	PurgeInterval    time.Duration
}

func (c *Config) applyDefaults() {
	if c.Threshold <= 0 {
		c.Threshold = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = time.Minute
	}
	if c.InactivityWindow <= 0 {
		c.InactivityWindow = 15 * time.Minute
	}
	if c.PurgeInterval <= 0 {
		c.PurgeInterval = time.Minute
	}
}

// Decision is the admission verdict for one identifier. The limiter never
// fails the caller; it only decides.
type Decision struct {
	Allowed           bool
	RemainingAttempts int
	LockedUntil       *time.Time
	RetryAfter        time.Duration
}

type entry struct {
	failureCount  int
	lastAttemptAt time.Time
	lockedUntil   time.Time // zero while unlocked
}

type Limiter struct {
	cfg Config

	mu      sync.Mutex
	entries map[string]*entry

	now  func() time.Time
	done chan struct{}
	wg   sync.WaitGroup
}

func New(cfg Config) *Limiter {
	cfg.applyDefaults()
	l := &Limiter{
		cfg:     cfg,
		entries: make(map[string]*entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	l.wg.Add(1)
	go l.purgeLoop()
	return l
}

// Normalize lower-cases and trims an identifier so "A@x.com" and "a@x.com"
// share one entry.
func Normalize(identifier string) string {
	return strings.TrimSpace(strings.ToLower(identifier))
}

// Check reports whether the identifier is currently admitted. Unknown
// identifiers are always admitted with the full number of attempts left.
func (l *Limiter) Check(identifier string) Decision {
	key := Normalize(identifier)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return Decision{Allowed: true, RemainingAttempts: l.cfg.Threshold}
	}
	return l.decide(e, now)
}

// RecordFailure increments the failure count and, once the threshold is
// reached, starts (or extends) the lockout. It returns the state after the
// failure so the caller can report remaining attempts.
func (l *Limiter) RecordFailure(identifier string) Decision {
	key := Normalize(identifier)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.failureCount++
	e.lastAttemptAt = now
	if e.failureCount >= l.cfg.Threshold {
		e.lockedUntil = now.Add(l.delay(e.failureCount))
	}
	return l.decide(e, now)
}

// RecordSuccess clears all failure history for the identifier.
func (l *Limiter) RecordSuccess(identifier string) {
	key := Normalize(identifier)

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
}

// Close stops the purge loop. The limiter must not be used afterwards.
func (l *Limiter) Close() {
	close(l.done)
	l.wg.Wait()
}

// delay follows min(BaseDelay * 2^(failures-Threshold), MaxDelay).
func (l *Limiter) delay(failures int) time.Duration {
	shift := failures - l.cfg.Threshold
	if shift >= 32 {
		return l.cfg.MaxDelay
	}
	d := l.cfg.BaseDelay << uint(shift)
	if d <= 0 || d > l.cfg.MaxDelay {
		return l.cfg.MaxDelay
	}
	return d
}

// decide must be called with the mutex held.
func (l *Limiter) decide(e *entry, now time.Time) Decision {
	remaining := l.cfg.Threshold - e.failureCount
	if remaining < 0 {
		remaining = 0
	}
	if !e.lockedUntil.IsZero() && now.Before(e.lockedUntil) {
		until := e.lockedUntil
		return Decision{
			RemainingAttempts: remaining,
			LockedUntil:       &until,
			RetryAfter:        until.Sub(now),
		}
	}
	// An expired lock admits again, but the failure count is kept until a
	// success or the inactivity purge, so repeat offenders escalate.
	return Decision{Allowed: true, RemainingAttempts: remaining}
}

func (l *Limiter) purgeLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.purge()
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) purge() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.Sub(e.lastAttemptAt) > l.cfg.InactivityWindow {
			delete(l.entries, key)
		}
	}
}
