// Package session holds the in-memory conversation state keyed by opaque
// session identifiers. Sessions expire after an idle timeout; a background
// sweep removes expired entries, though an expired session looked up before
// the sweep behaves exactly like an absent one.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

const (
	DefaultTimeout       = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
)

// Conversation is the per-session state: an immutable context snapshot set
// once at session start, and an append-only message log. The mutex
// serializes whole turns so concurrent requests against one session id
// never interleave history appends.
type Conversation struct {
	mu       sync.Mutex
	snapshot string
	messages []domain.ChatMessage
}

// Lock takes the per-session turn lock.
func (c *Conversation) Lock() { c.mu.Lock() }

// Unlock releases the per-session turn lock.
func (c *Conversation) Unlock() { c.mu.Unlock() }

// SetSnapshot pins the formatted data context for follow-up turns. Caller
// must hold the lock.
func (c *Conversation) SetSnapshot(s string) { c.snapshot = s }

// Snapshot returns the pinned data context, empty if none was set. Caller
// must hold the lock.
func (c *Conversation) Snapshot() string { return c.snapshot }

// Append extends the message log. Caller must hold the lock; only complete
// round-trips should be appended.
func (c *Conversation) Append(msgs ...domain.ChatMessage) {
	c.messages = append(c.messages, msgs...)
}

// History returns the message log. Callers must hold the lock and must not
// mutate the returned slice.
func (c *Conversation) History() []domain.ChatMessage { return c.messages }

type entry struct {
	conv         *Conversation
	lastActivity time.Time
}

// StoreConfig tunes the session store. Zero values fall back to defaults;
// Now is injectable for tests.
type StoreConfig struct {
	Timeout       time.Duration
	SweepInterval time.Duration
	Now           func() time.Time
}

// Store maps session ids to conversations and expires idle ones.
type Store struct {
	mu            sync.Mutex
	sessions      map[string]*entry
	timeout       time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

func NewStore(cfg StoreConfig) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = DefaultSweepInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions:      make(map[string]*entry),
		timeout:       timeout,
		sweepInterval: sweep,
		now:           now,
	}
}

// GetOrCreate returns the live conversation for id, refreshing its activity
// time. An absent or expired id yields a fresh, empty conversation.
func (s *Store) GetOrCreate(id string) *Conversation {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok && now.Sub(e.lastActivity) < s.timeout {
		e.lastActivity = now
		return e.conv
	}

	conv := &Conversation{}
	s.sessions[id] = &entry{conv: conv, lastActivity: now}
	log.Printf("session store: created session %s", id)
	return conv
}

// Touch refreshes a session's activity time if it is still live.
func (s *Store) Touch(id string) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok && now.Sub(e.lastActivity) < s.timeout {
		e.lastActivity = now
	}
}

// Clear removes a session immediately, regardless of timeout state.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		log.Printf("session store: cleared session %s", id)
	}
}

// SweepExpired removes every currently-expired session and reports how many
// were dropped.
func (s *Store) SweepExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastActivity) >= s.timeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Start runs the periodic sweep until ctx is cancelled.
func (s *Store) Start(ctx context.Context) {
	log.Println("Session sweeper starting...")
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.SweepExpired(); removed > 0 {
				log.Printf("session store: swept %d expired sessions", removed)
			}
		}
	}
}
