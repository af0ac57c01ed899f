package cache

import (
	"sync"
)

// TokenBlacklist records revoked session tokens. Logout inserts the
// presented token; the auth middleware checks membership on every request.
type TokenBlacklist interface {
	Add(token string) error
	Contains(token string) (bool, error)
}

// Blacklist is the process-wide blacklist instance. Startup swaps in the
// Redis-backed implementation when Redis is configured.
var Blacklist TokenBlacklist = NewMemoryBlacklist()

// MemoryBlacklist is a process-wide keyed set. Its lifecycle is process
// start to process stop; nothing survives a restart. A multi-instance
// deployment must use the Redis-backed blacklist instead.
type MemoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		tokens: make(map[string]struct{}),
	}
}

func (b *MemoryBlacklist) Add(token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
	return nil
}

func (b *MemoryBlacklist) Contains(token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok, nil
}
