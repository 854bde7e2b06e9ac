package session

import (
	"context"
	"sync"
	"time"
)

// Revoker remembers logged-out token ids until they expire on their own.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevoker is a process-local Revoker, used when Redis is unavailable.
type MemoryRevoker struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{entries: make(map[string]time.Time)}
}

func (r *MemoryRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, exp := range r.entries {
		if now.After(exp) {
			delete(r.entries, k)
		}
	}
	r.entries[jti] = now.Add(ttl)
	return nil
}

func (r *MemoryRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.entries[jti]
	return ok && time.Now().Before(exp), nil
}
