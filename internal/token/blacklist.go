package token

import (
	"sync"
	"time"

	"rez/pkg/logging"
)

// Blacklist provides thread-safe storage for consumed single-use tokens.
// Membership prevents a cryptographically valid token from being redeemed
// twice. The set is emptied wholesale on a fixed cadence rather than
// per-entry: a cleared entry only becomes replayable if the token's own
// embedded expiry has not lapsed yet, so the clear interval must be at
// least the maximum single-use token TTL. That relationship is enforced
// by config validation at startup.
type Blacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}

	clearInterval time.Duration
	stopClear     chan struct{}
}

// NewBlacklist creates a blacklist and starts its background clear
// goroutine, which runs every clearInterval until Stop is called.
func NewBlacklist(clearInterval time.Duration) *Blacklist {
	bl := &Blacklist{
		tokens:        make(map[string]struct{}),
		clearInterval: clearInterval,
		stopClear:     make(chan struct{}),
	}

	go bl.clearLoop()

	return bl
}

// Add marks a token as consumed.
func (bl *Blacklist) Add(tok string) {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	bl.tokens[tok] = struct{}{}
}

// Contains reports whether a token has been consumed.
func (bl *Blacklist) Contains(tok string) bool {
	bl.mu.RLock()
	defer bl.mu.RUnlock()
	_, ok := bl.tokens[tok]
	return ok
}

// Clear unconditionally empties the set and returns the number of
// entries removed.
func (bl *Blacklist) Clear() int {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	count := len(bl.tokens)
	bl.tokens = make(map[string]struct{})
	return count
}

// Count returns the number of blacklisted tokens.
func (bl *Blacklist) Count() int {
	bl.mu.RLock()
	defer bl.mu.RUnlock()
	return len(bl.tokens)
}

// Stop stops the background clear goroutine.
func (bl *Blacklist) Stop() {
	close(bl.stopClear)
}

// clearLoop periodically empties the blacklist.
func (bl *Blacklist) clearLoop() {
	ticker := time.NewTicker(bl.clearInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if count := bl.Clear(); count > 0 {
				logging.Info("Token", "Cleared %d blacklisted tokens", count)
			} else {
				logging.Debug("Token", "No blacklisted tokens to clear")
			}
		case <-bl.stopClear:
			return
		}
	}
}
