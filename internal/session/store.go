package session

import (
	"sync"
	"time"

	"rez/pkg/logging"
)

// Record holds the portal state for one authenticated MCP session. The
// session id is the MCP-side correlation key; the cookie is the upstream
// portal's own session credential, captured once at login and replayed
// on every data fetch.
type Record struct {
	SessionID  string
	RegisterNo string
	Cookie     string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Store provides thread-safe in-memory storage for session records,
// keyed by MCP session id. Records expire after a fixed TTL from
// creation; the call gate may extend (never shorten) the expiry of
// records in active use. A background sweep evicts expired records.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record

	ttl           time.Duration
	sweepInterval time.Duration
	stopSweep     chan struct{}
}

// NewStore creates a session store with the given record TTL and starts
// the background eviction sweep, which runs every sweepInterval until
// Stop is called.
func NewStore(ttl, sweepInterval time.Duration) *Store {
	s := &Store{
		records:       make(map[string]*Record),
		ttl:           ttl,
		sweepInterval: sweepInterval,
		stopSweep:     make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

// Create inserts a record for sessionID, unconditionally overwriting any
// existing one (last-login-wins). The returned record is a copy; the
// store keeps ownership of the live one.
func (s *Store) Create(sessionID, registerNo, cookie string) Record {
	now := time.Now()
	rec := &Record{
		SessionID:  sessionID,
		RegisterNo: registerNo,
		Cookie:     cookie,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	s.mu.Lock()
	s.records[sessionID] = rec
	s.mu.Unlock()

	logging.Info("Session", "Created session %s for register no %s (expires %s)",
		logging.TruncateSessionID(sessionID), registerNo, rec.ExpiresAt.Format(time.RFC3339))

	return *rec
}

// Get returns a copy of the record for sessionID, or nil if absent.
// Expiry is not checked here - that is the gate's concern, so that
// eviction and extension stay a single serialized decision.
func (s *Store) Get(sessionID string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[sessionID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

// Extend moves the record's expiry forward to newExpiry. The extension
// is monotonic: a newExpiry earlier than the current expiry is ignored.
// Returns false if the record does not exist.
func (s *Store) Extend(sessionID string, newExpiry time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[sessionID]
	if !ok {
		return false
	}
	if newExpiry.After(rec.ExpiresAt) {
		rec.ExpiresAt = newExpiry
	}
	return true
}

// Remove deletes the record for sessionID. Removing an absent record is
// a no-op.
func (s *Store) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Stop stops the background eviction sweep.
func (s *Store) Stop() {
	close(s.stopSweep)
}

// sweepLoop periodically evicts expired records.
func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopSweep:
			return
		}
	}
}

// sweep removes every record whose expiry has passed.
func (s *Store) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, rec := range s.records {
		if now.After(rec.ExpiresAt) {
			delete(s.records, id)
			count++
		}
	}

	if count > 0 {
		logging.Info("Session", "Evicted %d expired sessions", count)
	} else {
		logging.Debug("Session", "No expired sessions to evict")
	}
}
