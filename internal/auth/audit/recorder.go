// Package audit records security events without ever blocking or failing
// the login/logout flow. Events are handed to a buffered channel and a
// single worker persists them with a bounded timeout; a full buffer drops
// the event and a store failure goes to the operational log, never back to
// the caller.
package audit

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/7-central/admin-auth-service/internal/auth/domain"
)

type Event struct {
	Action    domain.AuditAction
	AdminID   string // empty when the identity is unknown
	Email     string
	IPAddress string
	UserAgent string
	Success   bool
	Timestamp time.Time
	Details   map[string]string
}

type Config struct {
	BufferSize   int
	WriteTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 256
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
}

type StoreRecorder struct {
	cfg   Config
	store domain.AuditStore

	ch        chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewStoreRecorder(store domain.AuditStore, cfg Config) *StoreRecorder {
	cfg.applyDefaults()
	r := &StoreRecorder{
		cfg:   cfg,
		store: store,
		ch:    make(chan Event, cfg.BufferSize),
		done:  make(chan struct{}),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Record enqueues an event and returns immediately. Callers must invoke it
// only after the authentication outcome is final, so the trail never holds
// an entry without a corresponding real outcome.
func (r *StoreRecorder) Record(event Event) {
	if r == nil || r.closed.Load() {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case r.ch <- event:
	case <-r.done:
	default:
		r.dropped.Add(1)
		log.Printf("warn: audit buffer full, dropped %s event for %s", event.Action, event.Email)
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (r *StoreRecorder) Dropped() uint64 {
	if r == nil {
		return 0
	}
	return r.dropped.Load()
}

// Close drains buffered events and stops the worker.
func (r *StoreRecorder) Close() {
	if r == nil {
		return
	}
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		close(r.done)
		r.wg.Wait()
	})
}

func (r *StoreRecorder) run() {
	defer r.wg.Done()

	for {
		select {
		case event := <-r.ch:
			r.persist(event)
		case <-r.done:
			for {
				select {
				case event := <-r.ch:
					r.persist(event)
				default:
					return
				}
			}
		}
	}
}

func (r *StoreRecorder) persist(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.WriteTimeout)
	defer cancel()

	details := map[string]string{
		"email":   event.Email,
		"success": strconv.FormatBool(event.Success),
	}
	for k, v := range event.Details {
		details[k] = v
	}

	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    event.Action,
		IPAddress: event.IPAddress,
		UserAgent: event.UserAgent,
		Details:   details,
		CreatedAt: event.Timestamp,
	}
	if event.AdminID != "" {
		adminID := event.AdminID
		entry.AdminID = &adminID
	}

	if err := r.store.Append(ctx, entry); err != nil {
		log.Printf("warn: failed to append %s audit entry: %v", event.Action, err)
	}
}
