package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/battleship-go/internal/storage"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Storage is an in-memory implementation of storage.Store
type Storage struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

var _ storage.Store = (*Storage)(nil)

// Get returns a copy of the stored value
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len returns the number of live entries
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			count++
		}
	}
	return count
}

func (s *Storage) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
